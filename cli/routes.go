package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siegeai/cloudmock/mockapi"
	"github.com/siegeai/cloudmock/mockstore"
)

func newRoutesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes [service...]",
		Short: "List the mocked read endpoints that serve would register",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			services := cfg.Services
			if len(args) > 0 {
				services = args
			}

			reg := mockapi.NewRegistry(mockstore.New())
			reg.LoadServices(cfg.SpecsPath, services...)

			out := cmd.OutOrStdout()
			for _, r := range reg.Routes() {
				if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", r.Template, r.OperationID, r.File); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().String("specs", "", "Path to the specification root of the API description tree")

	return cmd
}
