package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

// Define styles using lipgloss
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Margin(1, 0, 1, 0)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1).
			Margin(0, 0, 1, 2)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

// RecentCommand creates the recent command
func RecentCommand() *cli.Command {
	return &cli.Command{
		Name:  "recent",
		Usage: "Show the most recently created invoices and customers",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-pager",
				Usage: "Disable pager and output directly to terminal",
				Value: false,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return showRecentItems(ctx, c.String("config"), c.Bool("no-pager"))
		},
	}
}

func showRecentItems(ctx context.Context, configPath string, noPager bool) error {
	_, _, service, cleanup, err := openServices(configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	results := service.RecentItems(ctx)
	output := formatRecentOutput(results)

	if noPager || !isTerminal() {
		fmt.Print(output)
		return nil
	}
	return displayWithPager(output)
}

func formatRecentOutput(results []core.SearchResult) string {
	var output strings.Builder

	output.WriteString(titleStyle.Render("Recent Activity"))
	output.WriteString("\n")

	if len(results) == 0 {
		output.WriteString(noDataStyle.Render("No recent invoices or customers."))
		output.WriteString("\n")
		return output.String()
	}

	// Results arrive grouped already: invoices first, then customers.
	titler := cases.Title(language.English)
	var currentType core.EntityType
	for _, result := range results {
		if result.Type != currentType {
			currentType = result.Type
			output.WriteString(headerStyle.Render(titler.String(string(currentType)) + "s"))
			output.WriteString("\n")
		}
		output.WriteString(formatRecentCard(result))
		output.WriteString("\n")
	}

	return output.String()
}

func formatRecentCard(result core.SearchResult) string {
	var content strings.Builder

	content.WriteString(lipgloss.NewStyle().Bold(true).Render(result.Title))
	if result.Subtitle != "" {
		content.WriteString("\n" + result.Subtitle)
	}
	if result.Description != "" {
		content.WriteString("\n" + result.Description)
	}
	content.WriteString("\n\n")
	content.WriteString(metaStyle.Render(fmt.Sprintf("ID: %s | %s", result.ID, result.Route)))

	return cardStyle.Render(content.String())
}

// isTerminal checks if stdout is a terminal
func isTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// displayWithPager displays content using a pager
func displayWithPager(content string) error {
	pagerCmd := os.Getenv("PAGER")
	if pagerCmd == "" {
		pagers := []string{"less", "more", "cat"}
		for _, pager := range pagers {
			if _, err := exec.LookPath(pager); err == nil {
				pagerCmd = pager
				break
			}
		}
	}

	if pagerCmd == "" {
		fmt.Print(content)
		return nil
	}

	args := []string{}
	if strings.Contains(pagerCmd, "less") {
		args = []string{"-R", "-S", "-F", "-X"}
	}

	cmd := exec.Command(pagerCmd, args...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
