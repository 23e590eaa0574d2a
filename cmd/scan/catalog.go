package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/scanner"
)

type catalogDomain struct {
	Name     string                  `json:"name"`
	Category model.Category          `json:"category"`
	Weight   float64                 `json:"weight"`
	Checks   []model.CheckDescriptor `json:"checks"`
}

func catalogCmd() *cobra.Command {
	var (
		domain string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List every check, optionally for one domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			domains, err := selectDomains(domain)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(domains)
			}
			return printCatalog(cmd.OutOrStdout(), domains)
		},
	}
	cmd.Flags().StringVar(&domain, "domain", "", "Only list this domain (e.g. cicd, security)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func selectDomains(name string) ([]catalogDomain, error) {
	var out []catalogDomain
	for _, e := range scanner.All() {
		if name != "" && e.Name() != name {
			continue
		}
		out = append(out, catalogDomain{
			Name:     e.Name(),
			Category: e.Category(),
			Weight:   model.DomainWeight(e.Category()),
			Checks:   e.Checks(),
		})
	}
	if name != "" && len(out) == 0 {
		return nil, fmt.Errorf("unknown domain %q", name)
	}
	return out, nil
}

func printCatalog(w io.Writer, domains []catalogDomain) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	total := 0
	for _, d := range domains {
		fmt.Fprintf(tw, "\n%s (weight %0.2f, %d checks)\n", d.Name, d.Weight, len(d.Checks))
		fmt.Fprintln(tw, "ID\tSEVERITY\tWEIGHT\tNAME")
		for _, c := range d.Checks {
			fmt.Fprintf(tw, "%s\t%s\t%0.1f\t%s\n", c.ID, c.Severity, c.Weight, c.Name)
		}
		total += len(d.Checks)
	}
	fmt.Fprintf(tw, "\n%d checks in %d domains\n", total, len(domains))
	return tw.Flush()
}
