package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/medicore/hospital-portal/internal/core/authz"
	"github.com/medicore/hospital-portal/internal/core/security"
	"github.com/medicore/hospital-portal/internal/core/service"
)

func checkCmd() *cobra.Command {
	var (
		kind  string
		field string
		min   float64
		max   float64
	)
	cmd := &cobra.Command{
		Use:   "check <value>",
		Short: "Validate a value and print the verdict as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := security.Check{Kind: security.Kind(kind), Field: field, Value: args[0]}
			if cmd.Flags().Changed("min") {
				c.Min = &min
			}
			if cmd.Flags().Changed("max") {
				c.Max = &max
			}
			verdict, err := service.NewValidationService(nil).Run(context.Background(), c)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(verdict)
		},
	}
	kinds := make([]string, len(security.Kinds))
	for i, k := range security.Kinds {
		kinds[i] = string(k)
	}
	cmd.Flags().StringVar(&kind, "kind", string(security.KindInput), "validator: "+strings.Join(kinds, ", "))
	cmd.Flags().StringVar(&field, "field", "", "field label used in messages")
	cmd.Flags().Float64Var(&min, "min", 0, "lower bound for --kind number")
	cmd.Flags().Float64Var(&max, "max", 0, "upper bound for --kind number")
	return cmd
}

func routeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route <role>",
		Short: "Print the dashboard route of a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), authz.DashboardRouteFor(args[0]))
			return err
		},
	}
}
