package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/lib/pq"

	"github.com/goliatone/go-inquire"
	"github.com/goliatone/go-inquire/pkg/openapi"
	"github.com/goliatone/go-inquire/pkg/param"
	"github.com/goliatone/go-inquire/pkg/promptfile"
	"github.com/goliatone/go-inquire/pkg/sqlsource"
)

type prompt struct {
	name string
	args param.Params
}

func main() {
	file := flag.String("file", "", "prompt file (YAML) to run")
	document := flag.String("openapi", "", "OpenAPI document to derive prompts from")
	operation := flag.String("operation", "", "operation ID inside the -openapi document")
	dsn := flag.String("dsn", "", "Postgres DSN backing sql_check prompts in -file")
	asJSON := flag.Bool("json", false, "print collected values as JSON")
	flag.Parse()

	ctx := context.Background()

	var source sqlsource.Querier
	if *dsn != "" {
		db, err := sql.Open("postgres", *dsn)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()
		source = sqlsource.NewDB(db)
	}

	prompts, err := loadPrompts(ctx, *file, *document, *operation, source)
	if err != nil {
		log.Fatalf("load prompts: %v", err)
	}

	eng := inquire.New()
	collected := make(map[string]any, len(prompts))
	for i, p := range prompts {
		res, err := eng.Get(ctx, p.args)
		if err != nil {
			log.Fatalf("acquire %s: %v", label(p, i), err)
		}
		collected[label(p, i)] = resultValue(res)
	}

	if *asJSON {
		payload, err := json.MarshalIndent(collected, "", "  ")
		if err != nil {
			log.Fatalf("encode values: %v", err)
		}
		fmt.Println(string(payload))
		return
	}
	for i, p := range prompts {
		fmt.Printf("%s = %s\n", label(p, i), render(collected[label(p, i)]))
	}
}

func loadPrompts(ctx context.Context, file, document, operation string, source sqlsource.Querier) ([]prompt, error) {
	switch {
	case file != "" && document != "":
		return nil, fmt.Errorf("-file and -openapi are mutually exclusive")
	case file != "":
		set, err := promptfile.LoadFile(file)
		if err != nil {
			return nil, err
		}
		if source != nil {
			set = set.BindSQL(source)
		}
		prompts := make([]prompt, len(set.Prompts))
		for i, p := range set.Prompts {
			prompts[i] = prompt{name: p.Name, args: p.Args}
		}
		return prompts, nil
	case document != "":
		if operation == "" {
			return nil, fmt.Errorf("-openapi requires -operation")
		}
		raw, err := os.ReadFile(document)
		if err != nil {
			return nil, err
		}
		def, err := openapi.Derive(ctx, raw, operation, openapi.Options{})
		if err != nil {
			return nil, err
		}
		prompts := make([]prompt, len(def.Prompts))
		for i, p := range def.Prompts {
			prompts[i] = prompt{name: p.Name, args: p.Args}
		}
		return prompts, nil
	default:
		return nil, fmt.Errorf("one of -file or -openapi is required")
	}
}

func label(p prompt, i int) string {
	if p.name != "" {
		return p.name
	}
	return fmt.Sprintf("prompt_%d", i+1)
}

func resultValue(res inquire.Result) any {
	if res.IsNull() {
		return nil
	}
	if res.List {
		return res.Strings()
	}
	return res.String()
}

func render(v any) string {
	switch value := v.(type) {
	case nil:
		return "NULL"
	case []string:
		return strings.Join(value, ", ")
	default:
		return fmt.Sprint(value)
	}
}
