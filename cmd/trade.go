package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"skorpik-value/ledger"
	"skorpik-value/models"
	"skorpik-value/session"
	"skorpik-value/utils"
)

// tradeFlags are the sides shared by compare and export.
// Each value is an item id, optionally with a quantity: "scorp" or "scorp=3".
var tradeFlags struct {
	give    []string
	receive []string
}

// parseTradeArg splits "id=qty"; a bare id means quantity 1
func parseTradeArg(arg string) (string, int, error) {
	id, qty, found := strings.Cut(strings.TrimSpace(arg), "=")
	if id == "" {
		return "", 0, errors.Errorf("empty item id in %q", arg)
	}
	if !found {
		return id, 1, nil
	}
	n, err := strconv.Atoi(qty)
	if err != nil {
		return "", 0, errors.Wrapf(err, "invalid quantity in %q", arg)
	}
	return id, n, nil
}

// fillTrade puts the flag values on both sides of the session ledger.
// Repeating an id adds to its quantity.
func fillTrade(s *session.Controller, give, receive []string) error {
	sides := []struct {
		side models.Side
		args []string
	}{{models.SideGive, give}, {models.SideReceive, receive}}

	for _, sd := range sides {
		side := sd.side
		for _, arg := range sd.args {
			id, qty, err := parseTradeArg(arg)
			if err != nil {
				return err
			}
			if qty < 1 {
				return errors.Wrapf(ledger.ErrInvalidQuantity, "item %q quantity %d", id, qty)
			}
			state, err := s.AddItem(side, id)
			if err != nil {
				return err
			}
			if qty == 1 {
				continue
			}
			// AddItem already counted one
			total := quantityOn(state.Summary, side, id) - 1 + qty
			if _, err := s.SetQuantity(side, id, total); err != nil {
				return err
			}
		}
	}
	return nil
}

func quantityOn(summary models.TradeSummary, side models.Side, id string) int {
	entries := summary.Give
	if side == models.SideReceive {
		entries = summary.Receive
	}
	for _, e := range entries {
		if e.Item.ID == id {
			return e.Quantity
		}
	}
	return 0
}

func printSide(w io.Writer, title string, entries []models.ResolvedEntry, totals models.SideTotals) {
	fmt.Fprintf(w, "%s:\n", title)
	for _, e := range entries {
		fmt.Fprintf(w, "  %dx %s (%s, %s)\n", e.Quantity, e.Item.Name, utils.FormatValue(e.Item.Value), utils.FormatDemand(e.Item.Demand))
	}
	fmt.Fprintf(w, "  total value: %s, items: %d, demand: %s/10\n",
		utils.FormatValue(totals.TotalValue), totals.TotalQuantity, totals.AverageDemand.StringFixed(1))
}

func printSummary(w io.Writer, summary models.TradeSummary) {
	printSide(w, "Give", summary.Give, summary.GiveTotals)
	printSide(w, "Receive", summary.Receive, summary.RecvTotals)

	cmp := summary.Comparison
	fmt.Fprintf(w, "Value difference: %s\n", utils.FormatValue(cmp.ValueDifference))
	fmt.Fprintf(w, "Demand difference: %s %s\n", utils.FormatDemandDifference(cmp.DemandDifference), cmp.DemandTrend.Symbol())
	if len(summary.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped unknown items: %s\n", strings.Join(summary.Skipped, ", "))
	}
}
