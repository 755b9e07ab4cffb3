// Command addaccount creates or replaces records in the accounts file.
//
//	addaccount -file accounts.json -user alice -pass s3cret "/index.html" "/rt/*"
//
// Remaining arguments are route patterns; with none given the account is
// granted the universal wildcard. -region restricts the account's data to
// the named corridor.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/theoremus-urban-solutions/amtrak-board/accounts"
)

func main() {
	file := flag.String("file", "accounts.json", "accounts file to update")
	user := flag.String("user", "", "username")
	pass := flag.String("pass", "", "password")
	regionName := flag.String("region", "", "optional data filter, e.g. nec")
	flag.Parse()

	if *user == "" || *pass == "" {
		flag.Usage()
		os.Exit(1)
	}

	routes := flag.Args()
	if len(routes) == 0 {
		routes = []string{"*"}
	}

	table := map[string]accounts.Record{}
	if data, err := os.ReadFile(*file); err == nil {
		if err := json.Unmarshal(data, &table); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", *file, err)
			os.Exit(1)
		}
	}

	rec, err := accounts.Hash(*pass)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rec.Routes = routes
	if *regionName != "" {
		rec.Filters = map[string]string{"region": *regionName}
	}
	table[*user] = rec

	out, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := os.WriteFile(*file, append(out, '\n'), 0o600); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("updated %s with routes %v\n", *user, routes)
}
