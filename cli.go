package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"ledquote/models"
	"ledquote/services"
	"ledquote/utils"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#AAAAAA"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	totalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5534B"))
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			Padding(0, 1)
)

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "compute a quote for one screen configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "JSON configuration file; flags override its values"},
			&cli.StringFlag{Name: "type", Value: models.ScreenTypeStandard, Usage: "screen type (standard, cubic, flex, transparent, semitransparent)"},
			&cli.Float64Flag{Name: "width", Usage: "screen width in meters"},
			&cli.Float64Flag{Name: "height", Usage: "screen height in meters"},
			&cli.IntFlag{Name: "screens", Value: 1, Usage: "number of identical screens"},
			&cli.StringFlag{Name: "panel-size", Value: "500x500", Usage: "panel size in millimeters"},
			&cli.Float64Flag{Name: "pitch", Value: 3.9, Usage: "pixel pitch in millimeters"},
			&cli.StringFlag{Name: "environment", Value: models.EnvironmentIndoor, Usage: "indoor or outdoor"},
			&cli.IntFlag{Name: "brightness", Value: 1000, Usage: "brightness in nits"},
			&cli.BoolFlag{Name: "redundancy", Usage: "add redundant power and data"},
			&cli.BoolFlag{Name: "json", Usage: "print the quote as JSON"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c, true)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg.PricingCatalogPath)
			if err != nil {
				return err
			}
			screen, err := configurationFromFlags(c)
			if err != nil {
				return err
			}

			quote, err := services.NewQuoteEngine(catalog).Compute(screen)
			if err != nil {
				return err
			}
			services.Stamp(&quote, time.Now())

			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(models.QuoteResponse{
					Configuration: services.Normalize(screen),
					Summary:       services.Summary(services.Normalize(screen)),
					Quote:         quote,
				})
			}
			fmt.Fprintln(c.App.Writer, renderQuote(services.Normalize(screen), quote))
			return nil
		},
	}
}

// configurationFromFlags starts from the --config file when given and
// applies every flag set on the command line.
func configurationFromFlags(c *cli.Context) (models.Configuration, error) {
	screen := models.Configuration{
		ScreenType:      c.String("type"),
		NumScreens:      c.Int("screens"),
		PanelSize:       c.String("panel-size"),
		PitchPreference: c.Float64("pitch"),
		Environment:     c.String("environment"),
		Brightness:      c.Int("brightness"),
	}
	if path := c.String("config"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return screen, err
		}
		screen = models.Configuration{}
		if err := json.Unmarshal(data, &screen); err != nil {
			return screen, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if c.IsSet("type") {
		screen.ScreenType = c.String("type")
	}
	if c.IsSet("width") {
		screen.Width = c.Float64("width")
	}
	if c.IsSet("height") {
		screen.Height = c.Float64("height")
	}
	if c.IsSet("screens") {
		screen.NumScreens = c.Int("screens")
	}
	if c.IsSet("panel-size") {
		screen.PanelSize = c.String("panel-size")
	}
	if c.IsSet("pitch") {
		screen.PitchPreference = c.Float64("pitch")
	}
	if c.IsSet("environment") {
		screen.Environment = c.String("environment")
	}
	if c.IsSet("brightness") {
		screen.Brightness = c.Int("brightness")
	}
	if c.IsSet("redundancy") {
		screen.Redundancy = c.Bool("redundancy")
	}
	return screen, nil
}

// renderQuote lays out the quote as a boxed terminal table.
func renderQuote(cfg models.Configuration, quote models.QuoteResult) string {
	desc := lipgloss.NewStyle().Width(44)
	qty := lipgloss.NewStyle().Width(8).Align(lipgloss.Right)
	amount := lipgloss.NewStyle().Width(14).Align(lipgloss.Right)

	row := func(style lipgloss.Style, d, q, u, t string) string {
		return style.Render(lipgloss.JoinHorizontal(lipgloss.Top,
			desc.Render(d), qty.Render(q), amount.Render(u), amount.Render(t)))
	}

	lines := []string{
		titleStyle.Render("Devis " + quote.Reference),
		dimStyle.Render(services.Summary(cfg)),
		"",
		row(headerStyle, "Désignation", "Qté", "P.U.", "Total"),
	}
	for _, item := range quote.Pricing.Items {
		lines = append(lines, row(lipgloss.NewStyle(), item.Description,
			services.FormatCount(int64(item.Quantity)),
			services.FormatPrice(item.UnitPrice),
			services.FormatPrice(item.Total)))
	}
	lines = append(lines, "", totalStyle.Render("Total estimé HT: "+services.FormatPrice(quote.Pricing.TotalPrice)))
	if quote.SpecialScreenInfo != "" {
		lines = append(lines, dimStyle.Render(quote.SpecialScreenInfo))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func contactsCommand() *cli.Command {
	return &cli.Command{
		Name:  "contacts",
		Usage: "search KARLIA contacts, one query per input line",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c, true)
			if err != nil {
				return err
			}
			client := services.NewKarliaClient(cfg.Karlia)
			session := services.NewSearchSession(client.SearchContacts, cfg.Karlia.Debounce)
			defer session.Close()

			fmt.Fprintln(c.App.ErrWriter, dimStyle.Render("Tapez un nom, une entreprise ou un email (Ctrl-D pour quitter)."))
			return runContactSearch(os.Stdin, c.App.Writer, session, cfg.Karlia.Debounce+cfg.Karlia.Timeout)
		},
	}
}

// runContactSearch submits every input line to session and prints the
// results of the latest query. Superseded queries are never printed.
// After EOF it waits up to wait for the last pending result.
func runContactSearch(in io.Reader, out io.Writer, session *services.SearchSession, wait time.Duration) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	var pending uint64
	var deadline <-chan time.Time
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				if pending == 0 {
					return nil
				}
				lines = nil
				deadline = time.After(wait)
				continue
			}
			pending = session.Submit(strings.TrimSpace(line))
		case res := <-session.Results():
			if res.Token != pending {
				continue
			}
			printContacts(out, res)
			pending = 0
			if lines == nil {
				return nil
			}
		case <-deadline:
			return errors.New("timed out waiting for KARLIA")
		}
	}
}

func printContacts(out io.Writer, res services.SearchResult) {
	if res.Err != nil {
		fmt.Fprintln(out, errorStyle.Render(services.UserMessage(res.Err)))
		return
	}
	if len(res.Contacts) == 0 {
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%q: aucun contact", res.Query)))
		return
	}
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%q: %d contact(s)", res.Query, len(res.Contacts))))
	for _, contact := range res.Contacts {
		line := titleStyle.Render(contact.DisplayName())
		if contact.Email != "" {
			line += " " + dimStyle.Render(contact.Email)
		}
		fmt.Fprintln(out, line)
		if addr := contact.Address.Lines(); len(addr) > 0 {
			fmt.Fprintln(out, dimStyle.Render("  "+strings.Join(addr, ", ")))
		}
	}
}

func pingCommand() *cli.Command {
	return &cli.Command{
		Name:  "ping",
		Usage: "check the KARLIA API key and connectivity",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c, true)
			if err != nil {
				return err
			}
			probe := services.NewKarliaProbe(services.NewKarliaClient(cfg.Karlia), utils.ProbeTimeout)
			status := probe.Run(context.Background())
			if !status.OK {
				fmt.Fprintln(c.App.Writer, errorStyle.Render(status.Message))
				return cli.Exit("", 1)
			}
			fmt.Fprintln(c.App.Writer, totalStyle.Render(fmt.Sprintf("%s (%d ms)", status.Message, status.LatencyMs)))
			return nil
		},
	}
}
