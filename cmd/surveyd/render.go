package main

import (
	"fmt"
	"net/url"

	"github.com/mind-engage/mindengage-survey/internal/config"
	"github.com/mind-engage/mindengage-survey/internal/storage"
	"github.com/mind-engage/mindengage-survey/internal/survey"

	"github.com/spf13/cobra"
)

var (
	renderSave    bool
	renderPartial bool
)

var renderCmd = &cobra.Command{
	Use:   "render [query]",
	Short: "Render one survey page for a query string, e.g. 'p=1&m=2&a[1]=yes'",
	Long: `Render prints the form markup a participant would receive for the given
request parameters. Nothing is written to the results file unless --save is
given, which makes it handy for checking branching while authoring pages.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderSave, "save", false, "Append rows to the configured results file")
	renderCmd.Flags().BoolVar(&renderPartial, "partial", false, "Force partial-save mode")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	q := ""
	if len(args) == 1 {
		q = args[0]
	}
	form, err := url.ParseQuery(q)
	if err != nil {
		return fmt.Errorf("parse query: %w", err)
	}

	set, err := loadPages(cfg)
	if err != nil {
		return err
	}

	sink, closeSink := storage.Discard, func() {}
	if renderSave {
		sink, closeSink, err = buildSink(cmd.Context(), cfg, nil)
		if err != nil {
			return err
		}
	}
	defer closeSink()

	e := survey.New(survey.ParseParams(form), sink, survey.Options{
		SavePartial: cfg.SavePartial || renderPartial,
		Pages:       set,
		Logger:      logger,
		MaxSkips:    cfg.MaxSkips,
	})
	out, err := e.Page(cmd.Context())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
