package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"

	"roboadvisor/internal/client"
	"roboadvisor/internal/models"
	"roboadvisor/internal/uuid"
)

// submitCmd holds the flags for the 'submit' subcommand.
type submitCmd struct {
	orderType string
	amount    float64
	portfolio string
	key       string
	user      string
	path      string
	table     bool
}

func (*submitCmd) Name() string     { return "submit" }
func (*submitCmd) Synopsis() string { return "place a buy or sell order for a model portfolio" }
func (*submitCmd) Usage() string {
	return `roboctl submit -amount <amount> -portfolio <SYMBOL:WEIGHT[:PRICE],...> [-type buy|sell] [-key <idempotency key>] [-user <id>]

  Splits the amount across the portfolio. Reusing -key replays the original answer.
`
}

func (c *submitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.orderType, "type", "buy", "Order type: buy or sell")
	f.Float64Var(&c.amount, "amount", 0, "Total amount to invest or divest")
	f.StringVar(&c.portfolio, "portfolio", "", "Portfolio as SYMBOL:WEIGHT[:PRICE] entries separated by commas")
	f.StringVar(&c.key, "key", "", "Idempotency key (a random one is generated when empty)")
	f.StringVar(&c.user, "user", "", "User identifier")
	f.StringVar(&c.path, "path", "", "JSONPath expression selecting part of the response")
	f.BoolVar(&c.table, "table", false, "Print line items as a table")
}

func (c *submitCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	portfolio, err := parsePortfolio(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing portfolio: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.key == "" {
		c.key = uuid.NewV4()
	}

	resp, err := newClient().SubmitOrder(ctx, client.OrderRequest{
		Type:           c.orderType,
		Amount:         c.amount,
		Portfolio:      portfolio,
		IdempotencyKey: c.key,
		UserID:         c.user,
	})
	if err != nil {
		return fail("Error submitting order: %v", err)
	}

	if c.table {
		err = printItems(stdout, responseItems(resp, c.orderType))
	} else {
		err = printJSON(stdout, resp, c.path)
	}
	if err != nil {
		return fail("Error printing response: %v", err)
	}
	return subcommands.ExitSuccess
}

// responseItems flattens a response into ledger rows for table output.
func responseItems(resp *models.OrderResponse, orderType string) []models.Order {
	orders := make([]models.Order, 0, len(resp.Orders))
	for _, item := range resp.Orders {
		orders = append(orders, models.Order{
			OrderID:       resp.OrderID,
			ItemID:        item.ItemID,
			Type:          orderType,
			Stock:         item.Stock,
			Currency:      item.Currency,
			Amount:        item.Amount,
			Shares:        item.Shares,
			Price:         item.Price,
			Status:        resp.Status,
			ExecutionDate: resp.ExecutionDate,
		})
	}
	return orders
}

// ordersCmd holds the flags for the 'orders' subcommand.
type ordersCmd struct {
	query client.OrderQuery
	path  string
	table bool
}

func (*ordersCmd) Name() string     { return "orders" }
func (*ordersCmd) Synopsis() string { return "list recorded orders" }
func (*ordersCmd) Usage() string {
	return `roboctl orders [-stock <symbol>] [-user <id>] [-key <key>] [-status accepted|executed] [-type buy|sell] [-order <id>] [-page <n> -size <n>] [-path <jsonpath>]

  Lists line items in creation order. Filters combine with AND.
`
}

func (c *ordersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query.Stock, "stock", "", "Only orders for this stock")
	f.StringVar(&c.query.UserID, "user", "", "Only orders of this user")
	f.StringVar(&c.query.IdempotencyKey, "key", "", "Only orders with this idempotency key")
	f.StringVar(&c.query.Status, "status", "", "Only orders with this status")
	f.StringVar(&c.query.Type, "type", "", "Only buy or sell orders")
	f.Int64Var(&c.query.OrderID, "order", 0, "Only line items of this order")
	f.IntVar(&c.query.Page, "page", 0, "Page number")
	f.IntVar(&c.query.PageSize, "size", 0, "Items per page")
	f.StringVar(&c.path, "path", "", "JSONPath expression selecting part of the response, e.g. $.result[*].shares")
	f.BoolVar(&c.table, "table", false, "Print line items as a table")
}

func (c *ordersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	list, err := newClient().ListOrders(ctx, c.query)
	if err != nil {
		return fail("Error listing orders: %v", err)
	}

	if c.table {
		err = printItems(stdout, list.Result)
	} else {
		err = printJSON(stdout, list, c.path)
	}
	if err != nil {
		return fail("Error printing orders: %v", err)
	}
	return subcommands.ExitSuccess
}

// precisionCmd reads or changes the rounding precision.
type precisionCmd struct{}

func (*precisionCmd) Name() string     { return "precision" }
func (*precisionCmd) Synopsis() string { return "show or change the number of decimals used for rounding" }
func (*precisionCmd) Usage() string {
	return `roboctl precision [<decimals>]

  Without argument, prints the current precision. With an argument, sets it.
`
}

func (*precisionCmd) SetFlags(*flag.FlagSet) {}

func (*precisionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c := newClient()

	switch f.NArg() {
	case 0:
		decimals, err := c.GetPrecision(ctx)
		if err != nil {
			return fail("Error reading precision: %v", err)
		}
		fmt.Fprintln(stdout, decimals)
	case 1:
		decimals, err := strconv.Atoi(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing decimals %q: %v\n", f.Arg(0), err)
			return subcommands.ExitUsageError
		}
		if decimals, err = c.SetPrecision(ctx, decimals); err != nil {
			return fail("Error setting precision: %v", err)
		}
		fmt.Fprintln(stdout, decimals)
	default:
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
