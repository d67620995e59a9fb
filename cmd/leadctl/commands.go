package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xavierca1/mailmorph/internal/bootstrap"
	"github.com/xavierca1/mailmorph/internal/config"
	"github.com/xavierca1/mailmorph/internal/entity"
	"github.com/xavierca1/mailmorph/internal/usecase"
)

// withApp monta a App com a mesma Config da API e fecha no final.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(ctx, app)
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every lead",
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				leads, err := app.Leads.List(ctx)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), leads)
				}
				printLeads(cmd.OutOrStdout(), leads)
				return nil
			})
		},
	}
	cmd.Flags().BoolP("json", "j", false, "Output as JSON")
	return cmd
}

func addCmd() *cobra.Command {
	var input usecase.AddLeadInput

	cmd := &cobra.Command{
		Use:   "add [email]",
		Short: "Add a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Email = args[0]
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				lead, err := app.Leads.Add(ctx, input)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Lead %d added: %s\n", lead.ID, lead.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&input.Name, "name", "n", "", "Lead name")
	cmd.Flags().StringVarP(&input.Company, "company", "c", "", "Company")
	cmd.Flags().StringVarP(&input.Role, "role", "r", "", "Role at the company")
	cmd.Flags().IntVar(&input.Opened, "opened", 0, "Times the lead opened an email")
	cmd.Flags().IntVar(&input.Clicked, "clicked", 0, "Times the lead clicked a link")
	cmd.Flags().BoolVar(&input.Replied, "replied", false, "Lead already replied")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a lead; remaining leads are renumbered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid lead id %q", args[0])
			}
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.Leads.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Lead %d deleted\n", id)
				return nil
			})
		},
	}
}

func scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Label every lead Hot, Warm or Cold",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				leads, err := app.Leads.Score(ctx)
				if err != nil {
					return err
				}
				printLeads(cmd.OutOrStdout(), leads)
				return nil
			})
		},
	}
}

func followupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "followup",
		Short: "Send a follow-up to every lead still new",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				n, err := app.Leads.FollowUp(ctx)
				fmt.Fprintf(cmd.OutOrStdout(), "%d lead(s) contacted\n", n)
				return err
			})
		},
	}
}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-replies",
		Short: "Pull inbound replies from the mailbox once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				n, err := app.Sync.Execute(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d new repl(ies)\n", n)
				return nil
			})
		},
	}
}

func printLeads(out io.Writer, leads []entity.Lead) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tCOMPANY\tSTATUS\tSCORE\tREPLIED")
	for _, l := range leads {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%t\n",
			l.ID, l.Email, l.Name, l.Company, l.Status, l.Score, l.Replied)
	}
	w.Flush()
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
