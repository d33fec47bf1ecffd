package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uninurse/uninurse/internal/domain/command"
	"github.com/uninurse/uninurse/internal/domain/parser"
	"github.com/uninurse/uninurse/internal/platform/backup"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "uninurse",
		Short:         "Patient book for nurses, driven by text commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPLCmd(cmd.Context(), in, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.AddCommand(replCmd(in, out, errOut))
	rootCmd.AddCommand(execCmd(out, errOut))
	rootCmd.AddCommand(serveCmd(errOut))
	rootCmd.AddCommand(backupCmd(out, errOut))
	rootCmd.AddCommand(restoreCmd(out, errOut))
	rootCmd.AddCommand(backupsCmd(out, errOut))
	return rootCmd
}

func replCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read commands from the terminal (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPLCmd(cmd.Context(), in, out, errOut)
		},
	}
}

func runREPLCmd(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	a, err := newApp(ctx, errOut)
	if err != nil {
		return reportErr(errOut, err)
	}
	defer a.close()
	return runREPL(ctx, a.svc, in, out)
}

func execCmd(out, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:                "exec COMMAND...",
		Short:              "Run a single command, e.g. exec addTask 1 d/Change dressing",
		Args:               cobra.MinimumNArgs(1),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, errOut)
			if err != nil {
				return reportErr(errOut, err)
			}
			defer a.close()

			res, err := a.svc.Execute(ctx, strings.Join(args, " "))
			if err != nil {
				fmt.Fprintln(out, err.Error())
				if command.UserError(err) || parser.IsParseError(err) {
					return errRejected
				}
				return err
			}
			fmt.Fprintln(out, res.Feedback)
			return nil
		},
	}
}

func serveCmd(errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only patient views and the command endpoint over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), errOut)
			if err != nil {
				return reportErr(errOut, err)
			}
			defer a.close()
			return runServer(a)
		},
	}
}

func backupCmd(out, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Copy the saved patient book to the backup store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := newBackupApp(ctx, errOut)
			if err != nil {
				return reportErr(errOut, err)
			}
			defer b.close()

			info, err := b.manager.Backup(ctx)
			if err != nil {
				return reportErr(errOut, err)
			}
			b.logger.Info().Str("key", info.Key).Int64("size", info.Size).Str("store", b.store.Driver()).Msg("backup written")
			fmt.Fprintf(out, "Backup written: %s (%d bytes, sha256 %s)\n", info.Key, info.Size, info.SHA256)
			return nil
		},
	}
}

func restoreCmd(out, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "restore KEY",
		Short: "Replace the saved patient book with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := newBackupApp(ctx, errOut)
			if err != nil {
				return reportErr(errOut, err)
			}
			defer b.close()

			n, err := b.manager.Restore(ctx, args[0])
			if err != nil {
				return reportErr(errOut, err)
			}
			b.logger.Info().Str("key", args[0]).Int("patients", n).Msg("backup restored")
			fmt.Fprintf(out, "Restored %d patients from %s\n", n, args[0])
			return nil
		},
	}
}

func backupsCmd(out, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List stored backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := newBackupApp(ctx, errOut)
			if err != nil {
				return reportErr(errOut, err)
			}
			defer b.close()

			infos, err := b.manager.List(ctx)
			if err != nil {
				return reportErr(errOut, err)
			}
			return printBackups(out, infos)
		},
	}
}

func printBackups(out io.Writer, infos []backup.Info) error {
	if len(infos) == 0 {
		fmt.Fprintln(out, "No backups yet.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tSIZE\tCREATED")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", info.Key, info.Size, info.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

func reportErr(errOut io.Writer, err error) error {
	fmt.Fprintln(errOut, "error:", err)
	return err
}
