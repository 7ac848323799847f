package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/shaed-rp/findacharger/internal/geo"
	"github.com/shaed-rp/findacharger/internal/models"
	"github.com/shaed-rp/findacharger/internal/prefs"
)

func renderStations(stations []models.Station, view string) error {
	if view == prefs.ViewJSON {
		out, err := json.MarshalIndent(stations, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}
	printStationTable(stations)
	return nil
}

// printStationTable prints the stations using lipgloss's table
func printStationTable(stations []models.Station) {
	if len(stations) == 0 {
		fmt.Println("No stations found.")
		return
	}

	var rows [][]string
	for _, s := range stations {
		distance := "-"
		if s.Distance != nil {
			distance = geo.FormatDistance(*s.Distance, geo.Miles)
		}

		network := "-"
		if s.Network != nil && *s.Network != "" {
			network = *s.Network
		}

		connectors := "-"
		if len(s.ConnectorTypes) > 0 {
			connectors = strings.Join(s.ConnectorTypes, ", ")
		}

		rows = append(rows, []string{
			s.ID,
			s.Name,
			string(s.Status),
			network,
			connectors,
			portSummary(s.EVSECounts),
			distance,
			s.Address.Full,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		Headers("ID", "NAME", "STATUS", "NETWORK", "CONNECTORS", "PORTS", "DISTANCE", "ADDRESS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				return lipgloss.NewStyle().Bold(true).PaddingLeft(1).PaddingRight(1)
			}
			baseStyle := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)

			// Center align status, ports and distance columns
			if col == 2 || col == 5 || col == 6 {
				return baseStyle.AlignHorizontal(lipgloss.Center)
			}
			return baseStyle
		}).
		Rows(rows...)

	fmt.Println(t)
}

// portSummary collapses the per-level port counts into a short cell. Levels
// the provider never reported are left out entirely.
func portSummary(c models.EVSECounts) string {
	var parts []string
	if c.Level1 != nil {
		parts = append(parts, fmt.Sprintf("L1:%d", *c.Level1))
	}
	if c.Level2 != nil {
		parts = append(parts, fmt.Sprintf("L2:%d", *c.Level2))
	}
	if c.DCFast != nil {
		parts = append(parts, fmt.Sprintf("DC:%d", *c.DCFast))
	}
	if c.Other != nil {
		parts = append(parts, fmt.Sprintf("other:%d", *c.Other))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func printVocab(vocab map[string]string) {
	codes := make([]string, 0, len(vocab))
	for code := range vocab {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var rows [][]string
	for _, code := range codes {
		rows = append(rows, []string{code, vocab[code]})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		Headers("CODE", "LABEL").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				return lipgloss.NewStyle().Bold(true).PaddingLeft(1).PaddingRight(1)
			}
			return lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
		}).
		Rows(rows...)

	fmt.Println(t)
}
