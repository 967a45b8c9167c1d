package cmds

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/cliente-api/internal/client"
	"github.com/zhouzirui/cliente-api/internal/model/customer"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Server string
	Format string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command of the customer CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "clientectl",
		Short:         "Manage customers on a running cliente-api server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	defaultServer := os.Getenv("CLIENTECTL_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}

	cmd.PersistentFlags().StringVarP(&opts.Server, "server", "s", defaultServer, "base URL of the API")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(
		newListCommand(opts),
		newGetCommand(opts),
		newCreateCommand(opts),
		newUpdateCommand(opts),
		newDeleteCommand(opts),
	)

	return cmd
}

func (o *RootOptions) client() *client.Client {
	return client.New(o.Server)
}

func (o *RootOptions) printCustomers(w io.Writer, items []customer.Customer) error {
	if o.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCPF")
	for _, c := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, c.NationalID)
	}
	return tw.Flush()
}
