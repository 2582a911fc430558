// Command storefrontctl inspects and maintains the persisted storefront state.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/core"
	"storefront/internal/export"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "storefrontctl:", err)
		os.Exit(1)
	}
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:   "storefrontctl",
		Usage:  "inspect and maintain storefront data",
		Reader: in,
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv files loaded before the environment is read",
				Value: cli.NewStringSlice(".env"),
			},
			&cli.StringFlag{
				Name:  "metrics-textfile",
				Usage: "write operation metrics to this file on exit",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "print record counts, the snapshot origin and the session",
				Action: withApp(status),
			},
			{
				Name:   "dump",
				Usage:  "write the durable snapshot as JSON",
				Action: withApp(dump),
			},
			{
				Name:  "orders",
				Usage: "list orders, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "csv", Usage: "write one CSV row per order line"},
				},
				Action: withApp(orders),
			},
			{
				Name:  "reset",
				Usage: "restore the packaged seed data and log out",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip the confirmation prompt"},
				},
				Action: withApp(reset),
			},
		},
	}
}

func withApp(fn func(*cli.Context, *app.Application) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load(c.StringSlice("env-file")...)
		if err != nil {
			return err
		}
		a, err := app.New(c.Context, cfg, app.Options{})
		if err != nil {
			return err
		}
		defer a.Close()
		runErr := fn(c, a)
		if path := c.String("metrics-textfile"); path != "" {
			if err := a.WriteMetrics(path); err != nil && runErr == nil {
				runErr = err
			}
		}
		return runErr
	}
}

func status(c *cli.Context, a *app.Application) error {
	svc := a.Service()
	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "driver\t%s\n", a.Config().Driver)
	fmt.Fprintf(w, "origin\t%s\n", svc.Origin())
	for _, f := range export.Summarize(svc.Snapshot()).Fields() {
		fmt.Fprintf(w, "%s\t%s\n", f[0], f[1])
	}
	fmt.Fprintf(w, "administrators\t%d\n", len(svc.Administrators()))
	sess := svc.Session()
	switch {
	case sess.IsAdmin:
		fmt.Fprintln(w, "session\tadministrator")
	case sess.CurrentAccount != nil:
		fmt.Fprintf(w, "session\t%s\n", sess.CurrentAccount.Email)
	default:
		fmt.Fprintln(w, "session\tlogged out")
	}
	return w.Flush()
}

func dump(c *cli.Context, a *app.Application) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(a.Service().Snapshot())
}

func orders(c *cli.Context, a *app.Application) error {
	svc := a.Service()
	if c.Bool("csv") {
		return export.WriteOrdersCSV(c.App.Writer, svc.Orders(), svc.Accounts())
	}
	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tUSER\tSTATUS\tITEMS\tTOTAL")
	for _, o := range svc.Orders() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%.2f\n", o.ID, o.Date, o.UserID, o.Status, len(o.Items), o.Total)
	}
	return w.Flush()
}

func reset(c *cli.Context, a *app.Application) error {
	confirm := core.Confirmer(func(prompt string) bool {
		if c.Bool("yes") {
			return true
		}
		fmt.Fprintf(c.App.Writer, "%s [y/N] ", prompt)
		answer, _ := bufio.NewReader(c.App.Reader).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	})
	if err := a.Service().ResetData(c.Context, confirm); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "storefront data reset")
	return nil
}
