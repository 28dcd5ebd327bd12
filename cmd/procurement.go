package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"procure.GO/core/errs"
	"procure.GO/model/entity"
	"procure.GO/service/procurement"
)

var (
	prLines  []string
	prStatus string
	poStatus string
	reason   string
)

// parseLine reads ITEM:QTY[:SUPPLIER].
func parseLine(s string) (entity.PRLine, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return entity.PRLine{}, errs.Invalid("--line %q: want ITEM:QTY[:SUPPLIER]", s)
	}
	qty, err := strconv.Atoi(parts[1])
	if err != nil {
		return entity.PRLine{}, errs.Invalid("--line %q: quantity %q is not a number", s, parts[1])
	}
	l := entity.PRLine{ItemCode: parts[0], Quantity: qty}
	if len(parts) == 3 {
		l.SupplierID = parts[2]
	}
	return l, nil
}

func statusFilter(v string) (entity.Status, error) {
	if v == "" {
		return "", nil
	}
	return entity.ParseStatus(v)
}

var prCreateCmd = &cobra.Command{
	Use:   "pr:create",
	Short: "Raise a purchase requisition",
	RunE: func(cmd *cobra.Command, args []string) error {
		by, err := actor()
		if err != nil {
			return err
		}
		in := procurement.RequisitionInput{RequestedBy: by}
		if in.PRDate, err = dateFlag(cmd, "date"); err != nil {
			return err
		}
		if in.RequiredDate, err = dateFlag(cmd, "required"); err != nil {
			return err
		}
		for _, s := range prLines {
			l, err := parseLine(s)
			if err != nil {
				return err
			}
			in.Lines = append(in.Lines, l)
		}
		return withApp(func(a *app) error {
			pr, err := a.procurement.CreateRequisition(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created requisition %s (%s)\n", pr.ID, pr.Status)
			return nil
		})
	},
}

var prListCmd = &cobra.Command{
	Use:   "pr:list",
	Short: "List purchase requisitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := statusFilter(prStatus)
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			var list []entity.PurchaseRequisition
			if st != "" {
				list, err = a.requisitions.ByStatus(st)
			} else {
				list, err = a.requisitions.List()
			}
			if err != nil {
				return err
			}
			printRequisitions(cmd, list)
			return nil
		})
	},
}

func printRequisitions(cmd *cobra.Command, list []entity.PurchaseRequisition) {
	tw := table(cmd.OutOrStdout(), "ID", "DATE", "REQUIRED", "STATUS", "BY", "LINES", "QTY")
	for _, pr := range list {
		row(tw, pr.ID, entity.FormatDate(pr.PRDate), entity.FormatDate(pr.RequiredDate), pr.Status, pr.RequestedBy, len(pr.Lines), pr.TotalQuantity())
	}
	tw.Flush()
}

var prApproveCmd = &cobra.Command{
	Use:   "pr:approve <id>",
	Short: "Approve a pending requisition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		by, err := actor()
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			pr, err := a.procurement.ApproveRequisition(cmd.Context(), args[0], by)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Requisition %s is %s\n", pr.ID, pr.Status)
			return nil
		})
	},
}

var prRejectCmd = &cobra.Command{
	Use:   "pr:reject <id>",
	Short: "Reject a pending requisition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		by, err := actor()
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			pr, err := a.procurement.RejectRequisition(cmd.Context(), args[0], by, reason)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Requisition %s is %s\n", pr.ID, pr.Status)
			return nil
		})
	},
}

var poCreateCmd = &cobra.Command{
	Use:   "po:create <requisition id>",
	Short: "Create a purchase order from an approved requisition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		by, err := actor()
		if err != nil {
			return err
		}
		delivery, err := dateFlag(cmd, "delivery")
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			po, err := a.procurement.CreateOrderFromRequisition(cmd.Context(), args[0], by, delivery)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purchase order %s (%s) total %s\n", po.ID, po.Status, entity.FormatMoney(po.TotalAmount()))
			return nil
		})
	},
}

var poListCmd = &cobra.Command{
	Use:   "po:list",
	Short: "List purchase orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := statusFilter(poStatus)
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			var list []entity.PurchaseOrder
			if st != "" {
				list, err = a.orders.ByStatus(st)
			} else {
				list, err = a.orders.List()
			}
			if err != nil {
				return err
			}
			printOrders(cmd, list)
			return nil
		})
	},
}

func printOrders(cmd *cobra.Command, list []entity.PurchaseOrder) {
	tw := table(cmd.OutOrStdout(), "ID", "PR", "DATE", "DELIVERY", "STATUS", "BY", "SUPPLIERS", "TOTAL")
	for _, po := range list {
		row(tw, po.ID, po.PRID, entity.FormatDate(po.PODate), entity.FormatDate(po.DeliveryDate), po.Status,
			po.CreatedBy, strings.Join(po.Suppliers(), " "), entity.FormatMoney(po.TotalAmount()))
	}
	tw.Flush()
}

func orderDecision(use, short string, run func(a *app, cmd *cobra.Command, id, by string) (*entity.PurchaseOrder, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			by, err := actor()
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				po, err := run(a, cmd, args[0], by)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Purchase order %s is %s\n", po.ID, po.Status)
				return nil
			})
		},
	}
}

var poApproveCmd = orderDecision("po:approve <id>", "Approve a pending purchase order",
	func(a *app, cmd *cobra.Command, id, by string) (*entity.PurchaseOrder, error) {
		return a.procurement.ApproveOrder(cmd.Context(), id, by)
	})

var poRejectCmd = orderDecision("po:reject <id>", "Reject a pending purchase order",
	func(a *app, cmd *cobra.Command, id, by string) (*entity.PurchaseOrder, error) {
		return a.procurement.RejectOrder(cmd.Context(), id, by, reason)
	})

var poReceiveCmd = orderDecision("po:receive <id>", "Receive an approved purchase order into stock",
	func(a *app, cmd *cobra.Command, id, by string) (*entity.PurchaseOrder, error) {
		receipt, err := a.procurement.ReceiveOrder(cmd.Context(), id, by)
		if receipt != nil {
			for _, mv := range receipt.Movements {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d -> %d\n", mv.ItemCode, mv.Before, mv.After)
			}
		}
		if err != nil {
			return nil, err
		}
		return &receipt.Order, nil
	})

var backlogCmd = &cobra.Command{
	Use:   "backlog",
	Short: "Show requisitions and orders waiting on a decision or delivery",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			b, err := a.procurement.Backlog(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pending requisitions (%d)\n", len(b.PendingRequisitions))
			printRequisitions(cmd, b.PendingRequisitions)
			fmt.Fprintf(out, "\nPending orders (%d)\n", len(b.PendingOrders))
			printOrders(cmd, b.PendingOrders)
			fmt.Fprintf(out, "\nAwaiting receipt (%d)\n", len(b.AwaitingReceipt))
			printOrders(cmd, b.AwaitingReceipt)
			return nil
		})
	},
}

func init() {
	prCreateCmd.Flags().StringArrayVar(&prLines, "line", nil, "ITEM:QTY[:SUPPLIER], repeatable")
	prCreateCmd.Flags().String("date", "", "requisition date YYYY-MM-DD (defaults to today)")
	prCreateCmd.Flags().String("required", "", "date the goods are needed")
	prCreateCmd.MarkFlagRequired("line")

	prListCmd.Flags().StringVar(&prStatus, "status", "", "only requisitions with this status")
	poListCmd.Flags().StringVar(&poStatus, "status", "", "only orders with this status")

	prRejectCmd.Flags().StringVar(&reason, "reason", "", "why the requisition is rejected")
	poRejectCmd.Flags().StringVar(&reason, "reason", "", "why the order is rejected")
	poCreateCmd.Flags().String("delivery", "", "expected delivery date YYYY-MM-DD")

	rootCmd.AddCommand(prCreateCmd, prListCmd, prApproveCmd, prRejectCmd,
		poCreateCmd, poListCmd, poApproveCmd, poRejectCmd, poReceiveCmd, backlogCmd)
}
