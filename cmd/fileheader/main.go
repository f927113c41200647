package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cexll/fileheader/internal/config"
	"github.com/cexll/fileheader/internal/engine"
	"github.com/cexll/fileheader/internal/filehost"
	"github.com/cexll/fileheader/internal/header"
	"github.com/cexll/fileheader/internal/server"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

// errNoHeader makes `check` exit non-zero without printing an error.
var errNoHeader = errors.New("no header")

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errNoHeader) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fileheader",
		Short: "Insert and maintain metadata header comments in source files",
		Long: `fileheader writes an @Author/@Date/@LastEditTime header at the top of
source files and keeps the LastEditors and LastEditTime fields current.

Configuration comes from FILEHEADER_* environment variables, a .env file
and an optional .fileheader.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	insertCmd := &cobra.Command{
		Use:   "insert <file>",
		Short: "Prepend a header to a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runInsert,
	}
	insertCmd.Flags().String("lang", "", "Language id (default: derived from the file extension)")

	updateCmd := &cobra.Command{
		Use:   "update <file>",
		Short: "Run one save pass: refresh an existing header or auto-insert one",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}
	updateCmd.Flags().String("lang", "", "Language id (default: derived from the file extension)")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Print the header a new file would receive",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().String("lang", "", "Language id")
	_ = renderCmd.MarkFlagRequired("lang")

	checkCmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Report whether a file carries a header (exit 1 when it does not)",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}

	languagesCmd := &cobra.Command{
		Use:   "languages",
		Short: "List languages with a header template",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(header.Languages(), "\n"))
		},
	}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the header daemon",
		Args:  cobra.NoArgs,
		RunE:  runToken,
	}
	tokenCmd.Flags().String("subject", "editor", "Token subject")
	tokenCmd.Flags().Duration("ttl", 30*24*time.Hour, "Token lifetime (0 for no expiry)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	rootCmd.AddCommand(insertCmd, updateCmd, renderCmd, checkCmd, languagesCmd, tokenCmd, versionCmd)
	return rootCmd
}

func loadEngine() (*engine.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return engine.NewFromConfig(cfg)
}

func runInsert(cmd *cobra.Command, args []string) error {
	lang, _ := cmd.Flags().GetString("lang")
	doc, err := filehost.Open(args[0], lang)
	if err != nil {
		return err
	}
	e, err := loadEngine()
	if err != nil {
		return err
	}

	res, err := e.Insert(cmd.Context(), doc)
	if errors.Is(err, engine.ErrUnsupportedLanguage) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", res.Warning)
		return nil
	}
	if err != nil {
		return err
	}
	return apply(cmd, doc, res)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	lang, _ := cmd.Flags().GetString("lang")
	doc, err := filehost.Open(args[0], lang)
	if err != nil {
		return err
	}
	e, err := loadEngine()
	if err != nil {
		return err
	}

	res, err := e.WillSave(cmd.Context(), doc)
	if err != nil {
		return err
	}
	if res.Warning != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", res.Warning)
	}
	return apply(cmd, doc, res)
}

func apply(cmd *cobra.Command, doc engine.Document, res engine.Result) error {
	if err := filehost.Apply(doc, res); err != nil {
		return fmt.Errorf("failed to apply edit: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", doc.URI, res.Action)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	lang, _ := cmd.Flags().GetString("lang")
	e, err := loadEngine()
	if err != nil {
		return err
	}

	res, err := e.Insert(cmd.Context(), engine.Document{LanguageID: lang})
	if err != nil {
		if errors.Is(err, engine.ErrUnsupportedLanguage) {
			return errors.New(res.Warning)
		}
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(res.Text, "\n"))
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	doc, err := filehost.Open(args[0], "")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !header.HasHeader(doc.Text, header.DefaultScanLines) {
		fmt.Fprintf(out, "%s: no header\n", doc.URI)
		return errNoHeader
	}

	fmt.Fprintf(out, "%s: header found\n", doc.URI)
	for _, f := range header.ScanFields(doc.Text, header.DefaultScanLines) {
		fmt.Fprintf(out, "  %-14s %s\n", f.Key, f.Value)
	}
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	subject, _ := cmd.Flags().GetString("subject")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	token, err := server.IssueToken(cfg.AuthSecret, subject, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
