package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-mmcal/internal/config"
	"github.com/tartampluch/go-mmcal/internal/engine"
	"github.com/tartampluch/go-mmcal/internal/i18n"
	"github.com/tartampluch/go-mmcal/internal/myanmar"
	"github.com/tartampluch/go-mmcal/internal/server"
	"github.com/tartampluch/go-mmcal/internal/western"
	"github.com/tartampluch/go-mmcal/internal/worker"
)

// cli carries the state shared by every command once settings are loaded.
type cli struct {
	stdin io.Reader

	configPath string
	debug      bool
	asJSON     bool

	settings  *config.Settings
	calendar  *engine.Calendar
	logCloser io.Closer
}

func (a *cli) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

func (a *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           config.AppBinary,
		Short:         "Myanmar calendar converter, holiday engine and feed server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, config.FlagConfig, "c", "", config.FlagDescConfig)
	pf.BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)
	pf.BoolVar(&a.asJSON, config.FlagJSON, false, config.FlagDescJSON)
	pf.String(config.FlagLanguage, config.DefaultLanguage, config.FlagDescLanguage)
	pf.String(config.FlagCalendar, config.DefaultCalendar, config.FlagDescCalendar)

	root.AddCommand(
		a.convertCmd(),
		a.westernCmd(),
		a.astroCmd(),
		a.holidaysCmd(),
		a.thingyanCmd(),
		a.monthsCmd(),
		a.icsCmd(),
		a.serveCmd(),
		a.credentialsCmd(),
		versionCmd(),
	)
	return root
}

// load resolves settings, logging and the calendar for the running command.
func (a *cli) load(cmd *cobra.Command) error {
	s, err := config.LoadSettings(config.LoadOptions{
		ConfigPath: a.configPath,
		EnvFile:    config.EnvFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return err
	}
	a.settings = s

	level, _ := s.Level()
	a.logCloser = setupLogging(level, a.debug)
	logStartupInfo()

	cs, _ := western.ParseCalendarSystem(strings.ToLower(s.CalendarSystem))
	tag, err := i18n.ParseLanguage(s.Language)
	if err != nil {
		return err
	}
	a.calendar = engine.New(engine.Options{CalendarSystem: cs, Language: tag})
	slog.Debug(config.MsgCalendarReady,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyLang, tag.String(),
		config.LogKeyCalendar, cs.String(),
	)
	return nil
}

func (a *cli) convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [YYYY-MM-DD]",
		Short: "Show the Myanmar date of a Western date (today by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			y, m, d, err := westernArg(args, a.calendar.Options().CalendarSystem)
			if err != nil {
				return err
			}
			return a.printDay(cmd.OutOrStdout(), a.calendar.DayOfWestern(y, m, d))
		},
	}
}

func (a *cli) westernCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "western <myanmar-year> <month> <day>",
		Short: "Show the Western date of a Myanmar date (month 0 is First Waso, 13 Late Tagu, 14 Late Kason)",
		Long:  "The month may be a number or a name, and all arguments may be written in the --lang language.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := a.myanmarArgs(args)
			if err != nil {
				return err
			}
			return a.printDay(cmd.OutOrStdout(), a.calendar.DayOfMyanmar(nums[0], nums[1], nums[2]))
		},
	}
}

func (a *cli) astroCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "astro [YYYY-MM-DD]",
		Short: "Show the astrological attributes of a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			y, m, d, err := westernArg(args, a.calendar.Options().CalendarSystem)
			if err != nil {
				return err
			}
			day := a.calendar.DayOfWestern(y, m, d)
			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), day.Astro)
			}

			cat := a.calendar.Catalog()
			attrs := day.Astro
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", "Date", day.Text)
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", "Markers", strings.Join(day.Markers, cat.Separator()))
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", "Nagahle", cat.TranslateWord(attrs.NagahleName()))
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", "Mahabote", cat.TranslateWord(attrs.MahaboteName()))
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", "Nakhat", cat.TranslateWord(attrs.NakhatName()))
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", "Year", cat.TranslateWord(attrs.YearNameName()))
			return tw.Flush()
		},
	}
}

// holidayLine is one dated observance of a year listing.
type holidayLine struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	Anniversary bool   `json:"anniversary,omitempty"`
}

func (a *cli) holidaysCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "holidays [western-year]",
		Short: "List the public holidays of a Western year (the current year by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := time.Now().Year()
			if len(args) == 1 {
				nums, err := intArgs(args)
				if err != nil {
					return err
				}
				year = nums[0]
			}

			var lines []holidayLine
			for month := 1; month <= 12; month++ {
				for _, day := range a.calendar.Month(year, month) {
					date := formatWestern(day.Western)
					for _, name := range day.Holidays {
						lines = append(lines, holidayLine{Date: date, Name: name})
					}
					if all {
						for _, name := range day.Anniversaries {
							lines = append(lines, holidayLine{Date: date, Name: name, Anniversary: true})
						}
					}
				}
			}

			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), lines)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, l := range lines {
				_, _ = fmt.Fprintf(tw, "%s\t%s\n", l.Date, l.Name)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, config.FlagAll, false, config.FlagDescAll)
	return cmd
}

func (a *cli) thingyanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "thingyan <myanmar-year>",
		Short: "Show the Thingyan days that open a Myanmar year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := intArgs(args)
			if err != nil {
				return err
			}
			s, err := a.calendar.ThingyanDates(nums[0])
			if err != nil {
				return err
			}
			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), s)
			}

			cat := a.calendar.Catalog()
			row := func(tw io.Writer, name string, jdn int) {
				w := a.calendar.WesternDate(float64(jdn))
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n",
					cat.TranslateSentence(name), formatWestern(w), a.calendar.FormatMyanmarDate(a.calendar.MyanmarDate(float64(jdn))))
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			row(tw, "Thingyan Akyo", s.Akyo.JulianDayNumber)
			row(tw, "Thingyan Akya", s.Akya.JulianDayNumber)
			for _, d := range s.Akyat {
				row(tw, "Thingyan Akyat", d.JulianDayNumber)
			}
			row(tw, "Thingyan Atat", s.Atat.JulianDayNumber)
			row(tw, "Myanmar New Year's Day", s.NewYearDay.JulianDayNumber)
			return tw.Flush()
		},
	}
}

func (a *cli) monthsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "months <myanmar-year>",
		Short: "List the months of a Myanmar year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := intArgs(args)
			if err != nil {
				return err
			}
			list := a.calendar.Months(nums[0], 1)
			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for i, n := range list.Numbers {
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", n, list.Names[i], a.calendar.MonthHeader(nums[0], n))
			}
			return tw.Flush()
		},
	}
}

func (a *cli) icsCmd() *cobra.Command {
	var output string
	var year int
	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Write the iCalendar feed of holidays, anniversaries and birthdays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen := a.generator()
			if year != 0 {
				gen.Clock = engine.YearClock(year)
			}

			data, _, _, err := gen.RunSync(cmd.Context(), worker.SyncConfig(a.settings))
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, config.FilePermUserRW); err != nil {
				return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, config.FlagOutput, "o", "", config.FlagDescOutput)
	cmd.Flags().IntVar(&year, config.FlagYear, 0, config.FlagDescYear)
	return cmd
}

func (a *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the feed and the JSON day API, refreshing the feed periodically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			srv := server.NewCalendarServer(a.settings.ServerPort, a.calendar)
			w := worker.New(a.generator(), srv, a.settings)

			go w.Run(ctx)

			if err := srv.Start(ctx); err != nil {
				return err
			}
			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}
	cmd.Flags().String(config.FlagPort, config.DefaultPort, config.FlagDescPort)
	return cmd
}

func (a *cli) credentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the contacts web password kept in the system keyring",
	}

	var user string
	set := &cobra.Command{
		Use:   "set",
		Short: "Read a password from stdin and store it for the contacts web user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if user == "" {
				user = a.settings.WebUser
			}
			if user == "" {
				return errors.New(config.ErrUserRequired)
			}

			sc := bufio.NewScanner(a.stdin)
			password := ""
			if sc.Scan() {
				password = strings.TrimRight(sc.Text(), "\r\n")
			}
			if err := sc.Err(); err != nil {
				return fmt.Errorf("%s: %w", config.ErrKeyringWrite, err)
			}

			if err := worker.StorePassword(user, password); err != nil {
				return fmt.Errorf("%s: %w", config.ErrKeyringWrite, err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), config.MsgPassStored)
			return nil
		},
	}
	set.Flags().StringVar(&user, config.FlagUser, "", config.FlagDescUser)

	cmd.AddCommand(set)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// Settings are not needed to print the version.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func (a *cli) generator() *engine.Generator {
	return &engine.Generator{
		Clock:    engine.RealClock{},
		Fetcher:  engine.NewHTTPFetcher(),
		Calendar: a.calendar,
	}
}

// printDay writes the description of a day as text or JSON.
func (a *cli) printDay(w io.Writer, day engine.Day) error {
	if a.asJSON {
		return writeJSON(w, day)
	}

	cat := a.calendar.Catalog()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "%s\t%s\n", "Western", formatWestern(day.Western))
	_, _ = fmt.Fprintf(tw, "%s\t%s\n", "Myanmar", day.Text)
	_, _ = fmt.Fprintf(tw, "%s\t%d\n", "Julian day", day.JulianDay)
	_, _ = fmt.Fprintf(tw, "%s\t%s\n", "Year type", cat.TranslateSentence(titleYearType(day)))
	if len(day.Holidays) > 0 {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", "Holidays", strings.Join(day.Holidays, cat.Separator()))
	}
	if len(day.Anniversaries) > 0 {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", "Anniversaries", strings.Join(day.Anniversaries, cat.Separator()))
	}
	if len(day.Markers) > 0 {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", "Astro", strings.Join(day.Markers, cat.Separator()))
	}
	_, _ = fmt.Fprintf(tw, "%s\t%s\n", "Mahabote", cat.TranslateWord(day.Astro.MahaboteName()))
	return tw.Flush()
}

// titleYearType capitalises the year type for the catalog ("big watat" -> "Big Watat").
func titleYearType(day engine.Day) string {
	words := strings.Fields(day.Myanmar.YearType.String())
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func formatWestern(d western.Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// westernArg parses an optional YYYY-MM-DD argument; today when absent.
func westernArg(args []string, cs western.CalendarSystem) (int, int, int, error) {
	if len(args) == 0 {
		now := time.Now()
		return now.Year(), int(now.Month()), now.Day(), nil
	}
	d, err := western.ParseDate(args[0], cs)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return d.Year, d.Month, d.Day, nil
}

// myanmarArgs reads a year, a month number or name, and a day, accepting
// names and digits of the catalog language.
func (a *cli) myanmarArgs(args []string) ([]int, error) {
	cat := a.calendar.Catalog()
	plain := make([]string, len(args))
	for i, s := range args {
		plain[i] = cat.EnglishSentence(s)
	}
	if _, err := strconv.Atoi(plain[1]); err != nil {
		m, err := myanmar.MonthNumber(plain[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrArgNumber, err)
		}
		plain[1] = strconv.Itoa(m)
	}
	return intArgs(plain)
}

func intArgs(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, s := range args {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %q", config.ErrArgNumber, s)
		}
		out[i] = n
	}
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
