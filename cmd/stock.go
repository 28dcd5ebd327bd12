package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"procure.GO/core/errs"
	"procure.GO/model/entity"
	"procure.GO/service/stock"
)

var (
	saleItem  string
	saleQty   int
	salePrice string
	saleOnly  string

	adjItem   string
	adjType   string
	adjQty    int
	adjReason string
)

var salesRecordCmd = &cobra.Command{
	Use:   "sales:record",
	Short: "Record a sale and debit stock",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateFlag(cmd, "date")
		if err != nil {
			return err
		}
		in := stock.SaleInput{Date: date, ItemCode: saleItem, Quantity: saleQty, RecordedBy: actorFlag}
		if salePrice != "" {
			if in.UnitPrice, err = entity.ParseMoney(salePrice); err != nil {
				return errs.Invalid("--price: %v", err)
			}
		}
		return withApp(func(a *app) error {
			sale, mv, err := a.stock.RecordSale(in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded sale %s: %d x %s = %s (stock %d -> %d)\n",
				sale.ID, sale.Quantity, sale.ItemCode, entity.FormatMoney(sale.SalesAmount()), mv.Before, mv.After)
			return nil
		})
	},
}

var salesListCmd = &cobra.Command{
	Use:   "sales:list",
	Short: "List sales in a date range with their total",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := dateFlag(cmd, "from")
		if err != nil {
			return err
		}
		to, err := dateFlag(cmd, "to")
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			list, err := a.sales.Between(from, to)
			if err != nil {
				return err
			}
			tw := table(cmd.OutOrStdout(), "ID", "DATE", "ITEM", "QTY", "PRICE", "AMOUNT", "BY")
			sum, err := a.sales.TotalFor(from, to)
			if err != nil {
				return err
			}
			for _, s := range list {
				if saleOnly != "" && s.ItemCode != saleOnly {
					continue
				}
				row(tw, s.ID, entity.FormatDate(s.Date), s.ItemCode, s.Quantity,
					entity.FormatMoney(s.UnitPrice), entity.FormatMoney(s.SalesAmount()), s.RecordedBy)
			}
			if saleOnly == "" {
				row(tw, "", "", "", "", "TOTAL", entity.FormatMoney(sum), "")
			}
			return tw.Flush()
		})
	},
}

var stockAdjustCmd = &cobra.Command{
	Use:   "stock:adjust",
	Short: "Apply a manual stock adjustment (ADD or SUBTRACT)",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateFlag(cmd, "date")
		if err != nil {
			return err
		}
		typ, err := entity.ParseAdjustmentType(adjType)
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			adj, mv, err := a.stock.RecordAdjustment(stock.AdjustmentInput{
				Date:       date,
				ItemCode:   adjItem,
				Type:       typ,
				Quantity:   adjQty,
				Reason:     adjReason,
				AdjustedBy: actorFlag,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded adjustment %s: %s %d %s (stock %d -> %d)\n",
				adj.ID, adj.Type, adj.Quantity, adj.ItemCode, mv.Before, mv.After)
			return nil
		})
	},
}

var stockAdjustmentsCmd = &cobra.Command{
	Use:   "stock:adjustments <item>",
	Short: "List the adjustments of an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			list, err := a.adjustments.ForItem(args[0])
			if err != nil {
				return err
			}
			tw := table(cmd.OutOrStdout(), "ID", "DATE", "TYPE", "QTY", "REASON", "BY")
			for _, adj := range list {
				row(tw, adj.ID, entity.FormatDate(adj.Date), adj.Type, adj.Quantity, adj.Reason, adj.AdjustedBy)
			}
			return tw.Flush()
		})
	},
}

// reversal builds a command that deletes one stock record and reverses its stock change.
func reversal(use, short, label string, del func(a *app, id string) (stock.Movement, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				mv, err := del(a, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s (%s stock %d -> %d)\n", label, args[0], mv.ItemCode, mv.Before, mv.After)
				return nil
			})
		},
	}
}

var salesDeleteCmd = reversal("sales:delete <id>", "Delete a sale and return its quantity to stock", "sale",
	func(a *app, id string) (stock.Movement, error) { return a.stock.DeleteSale(id) })

var stockAdjustDeleteCmd = reversal("stock:adjust-delete <id>", "Delete an adjustment and reverse it", "adjustment",
	func(a *app, id string) (stock.Movement, error) { return a.stock.DeleteAdjustment(id) })

func init() {
	salesRecordCmd.Flags().StringVar(&saleItem, "item", "", "item code")
	salesRecordCmd.Flags().IntVar(&saleQty, "qty", 0, "quantity sold")
	salesRecordCmd.Flags().StringVar(&salePrice, "price", "", "unit price (defaults to catalog price)")
	salesRecordCmd.Flags().String("date", "", "sale date YYYY-MM-DD (defaults to today)")
	salesRecordCmd.MarkFlagRequired("item")
	salesRecordCmd.MarkFlagRequired("qty")

	salesListCmd.Flags().String("from", "", "first date YYYY-MM-DD")
	salesListCmd.Flags().String("to", "", "last date YYYY-MM-DD")
	salesListCmd.Flags().StringVar(&saleOnly, "item", "", "only sales of this item")

	stockAdjustCmd.Flags().StringVar(&adjItem, "item", "", "item code")
	stockAdjustCmd.Flags().StringVar(&adjType, "type", "", "ADD or SUBTRACT")
	stockAdjustCmd.Flags().IntVar(&adjQty, "qty", 0, "quantity")
	stockAdjustCmd.Flags().StringVar(&adjReason, "reason", "", "reason")
	stockAdjustCmd.Flags().String("date", "", "adjustment date YYYY-MM-DD (defaults to today)")
	for _, f := range []string{"item", "type", "qty"} {
		stockAdjustCmd.MarkFlagRequired(f)
	}

	rootCmd.AddCommand(salesRecordCmd, salesListCmd, stockAdjustCmd, stockAdjustmentsCmd, salesDeleteCmd, stockAdjustDeleteCmd)
}
