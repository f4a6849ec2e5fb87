package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/Rhymond/go-money"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"roboadvisor/internal/client"
	"roboadvisor/internal/models"
)

// register adds every roboctl subcommand to c.
func register(c *subcommands.Commander) {
	c.Register(&submitCmd{}, "orders")
	c.Register(&ordersCmd{}, "orders")
	c.Register(&precisionCmd{}, "config")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var serverURL = flag.String("server", envOr("ROBOCTL_SERVER", "http://localhost:8080"), "Base URL of the order engine")
var timeout = flag.Duration("timeout", 10*time.Second, "HTTP request timeout")

// stdout is where command output goes.
var stdout io.Writer = os.Stdout

func newClient() *client.OrderClient {
	return client.NewOrderClient(*serverURL, &http.Client{Timeout: *timeout})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parsePortfolio reads a portfolio written as comma-separated
// SYMBOL:WEIGHT[:PRICE] entries, e.g. "AAPL:60:150,MSFT:40".
func parsePortfolio(s string) ([]models.PortfolioStock, error) {
	var portfolio []models.PortfolioStock
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) < 2 || len(parts) > 3 || parts[0] == "" {
			return nil, fmt.Errorf("invalid portfolio entry %q, want SYMBOL:WEIGHT[:PRICE]", entry)
		}

		weight, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight in %q: %w", entry, err)
		}
		stock := models.PortfolioStock{Stock: parts[0], Weight: &weight}

		if len(parts) == 3 {
			price, err := strconv.ParseFloat(parts[2], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid price in %q: %w", entry, err)
			}
			stock.Price = &price
		}
		portfolio = append(portfolio, stock)
	}
	if len(portfolio) == 0 {
		return nil, fmt.Errorf("portfolio is empty")
	}
	return portfolio, nil
}

// printJSON writes v as indented JSON, or only the values selected by the
// JSONPath expression when expr is not empty.
func printJSON(w io.Writer, v any, expr string) error {
	if expr != "" {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		v, err = jsonpath.Get(expr, doc)
		if err != nil {
			return fmt.Errorf("evaluating %q: %w", expr, err)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatAmount renders an amount in its currency, e.g. "$1,000.00".
// Unknown currencies fall back to the plain number.
func formatAmount(amount float64, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return strconv.FormatFloat(amount, 'f', -1, 64) + " " + currency
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), currency).Display()
}

// printItems writes line items as an aligned table.
func printItems(w io.Writer, orders []models.Order) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tTYPE\tSTOCK\tAMOUNT\tSHARES\tPRICE\tSTATUS\tEXECUTION")
	for _, o := range orders {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			o.OrderID, o.Type, o.Stock,
			formatAmount(o.Amount, o.Currency),
			strconv.FormatFloat(o.Shares, 'f', -1, 64),
			formatAmount(o.Price, o.Currency),
			o.Status, o.ExecutionDate,
		)
	}
	return tw.Flush()
}

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
