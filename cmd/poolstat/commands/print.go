package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/wonny/poolstat/internal/catalog"
	"github.com/wonny/poolstat/internal/contracts"
	"github.com/wonny/poolstat/internal/report"
)

func printRatios(w io.Writer, ratios []contracts.RatioRecord) {
	PrintHeader(w, fmt.Sprintf("Pool Ratios (%d pools)", len(ratios)))

	widths := []int{4, 12, 10, 16, 16}
	PrintTableHeader(w, []string{"#", "Pair", "Venue", "Ratio", "Volume"}, widths)
	for i, r := range ratios {
		PrintTableRow(w, []string{
			strconv.Itoa(i + 1),
			r.PairLabel,
			r.Record.Venue,
			formatRatio(r.Ratio),
			formatVolume(r.Record.Volume),
		}, widths)
	}
}

func printStatistics(w io.Writer, summary contracts.StatisticsSummary, failures []string) {
	PrintHeader(w, "Ratio Statistics")

	for _, name := range contracts.StatisticNames() {
		if v, ok := summary.Get(name); ok {
			PrintKeyValue(w, name, formatRatio(v), 15)
		} else {
			PrintKeyValue(w, name, "n/a", 15)
		}
	}
	for _, f := range failures {
		PrintWarning(w, f)
	}
}

func printEstimates(w io.Writer, groupLabel string, estimates []report.Estimate) {
	PrintHeader(w, "Volume-Weighted Ratio Estimates")

	widths := []int{10, 16, 6}
	PrintTableHeader(w, []string{groupLabel, "Estimate", "Pools"}, widths)
	for _, e := range estimates {
		value := "n/a"
		if e.Value != nil {
			value = formatRatio(*e.Value)
		}
		PrintTableRow(w, []string{e.Asset, value, strconv.Itoa(len(e.Members))}, widths)
	}
	for _, e := range estimates {
		if e.Error != "" {
			PrintWarning(w, e.Error)
		}
	}
}

func printPick(w io.Writer, best contracts.RatioRecord) {
	PrintHeader(w, "Highest Volume Pool")
	PrintKeyValue(w, "Pair", best.PairLabel, 6)
	PrintKeyValue(w, "Venue", best.Record.Venue, 6)
	PrintKeyValue(w, "Ratio", formatRatio(best.Ratio), 6)
	PrintKeyValue(w, "Volume", formatVolume(best.Record.Volume), 6)
}

func printRanking(w io.Writer, ranked []contracts.RankedRecord) {
	PrintHeader(w, "Security Ranking")

	widths := []int{4, 12, 10, 6, 8, 9, 6}
	PrintTableHeader(w, []string{"Rank", "Pair", "Venue", "Score", "Audited", "Incidents", "Age"}, widths)
	for _, r := range ranked {
		PrintTableRow(w, []string{
			strconv.Itoa(r.Rank),
			r.Record.PairLabel(),
			r.Record.Venue,
			strconv.Itoa(r.Score),
			strconv.FormatBool(r.Security.Audited),
			strconv.Itoa(r.Security.Incidents),
			fmt.Sprintf("%dm", r.Security.AgeMonths),
		}, widths)
	}
}

func printVerification(w io.Writer, v catalog.Verification) {
	PrintHeader(w, "Catalog Verification")

	if v.Total != nil {
		printCheck(w, "total", *v.Total)
	}
	for _, c := range v.PrimaryAssets {
		printCheck(w, "asset "+c.Key, c)
	}
	for _, c := range v.Venues {
		printCheck(w, "venue "+c.Key, c)
	}

	PrintKeyValue(w, "tokens", fmt.Sprintf("%v", v.TokensUsed), 16)
	if len(v.InvalidTokens) > 0 {
		PrintError(w, fmt.Sprintf("tokens outside the allowed set: %v", v.InvalidTokens))
	}
	PrintKeyValue(w, "reputation unset", strconv.FormatBool(v.ReputationUnknown), 16)

	PrintSeparator(w)
	if v.OK {
		PrintSuccess(w, "Catalog matches expectations")
	} else {
		PrintError(w, "Catalog does not match expectations")
	}
}

func printCheck(w io.Writer, label string, c catalog.CountCheck) {
	mark := "✅"
	if !c.OK {
		mark = "❌"
	}
	PrintKeyValue(w, label, fmt.Sprintf("%d / %d %s", c.Actual, c.Expected, mark), 16)
}
