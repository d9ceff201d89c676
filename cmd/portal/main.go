// Command portal runs the hospital portal gateway.
//
// @title                       Hospital Portal API
// @version                     1.0
// @description                 Portal gateway in front of the hospital management backend.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portal",
		Short: "Hospital portal gateway",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(routeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
