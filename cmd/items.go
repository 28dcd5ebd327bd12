package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"procure.GO/core/errs"
	"procure.GO/model/entity"
)

var (
	itemsLow      bool
	itemsSupplier string
	itemsCategory string
	itemsSearch   string
)

var itemsListCmd = &cobra.Command{
	Use:   "items:list",
	Short: "List catalog items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			var (
				list []entity.Item
				err  error
			)
			switch {
			case itemsLow:
				list, err = a.items.LowStock()
			case itemsSupplier != "":
				list, err = a.items.BySupplier(itemsSupplier)
			case itemsCategory != "":
				list, err = a.items.ByCategory(itemsCategory)
			case itemsSearch != "":
				list, err = a.items.Search(itemsSearch)
			default:
				var corrupt []*errs.CorruptRecordError
				list, corrupt, err = a.items.LoadAll()
				for _, c := range corrupt {
					fmt.Fprintf(cmd.ErrOrStderr(), "  [warn] %v\n", c)
				}
			}
			if err != nil {
				return err
			}
			tw := table(cmd.OutOrStdout(), "CODE", "NAME", "CATEGORY", "PRICE", "STOCK", "REORDER", "SUPPLIER")
			for _, it := range list {
				row(tw, it.Code, it.Name, it.Category, entity.FormatMoney(it.UnitPrice), it.CurrentStock, it.ReorderLevel, it.SupplierID)
			}
			return tw.Flush()
		})
	},
}

var itemsCreateCmd = &cobra.Command{
	Use:   "items:create",
	Short: "Add an item to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		it, err := itemFromFlags(cmd, entity.Item{})
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			if err := a.items.Create(&it); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created item %s\n", it.Code)
			return nil
		})
	},
}

var itemsUpdateCmd = &cobra.Command{
	Use:   "items:update <code>",
	Short: "Change catalog fields of an item (stock changes go through sales and adjustments)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			cur, err := a.items.Get(args[0])
			if err != nil {
				return err
			}
			it, err := itemFromFlags(cmd, *cur)
			if err != nil {
				return err
			}
			if err := a.items.Update(&it); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated item %s\n", it.Code)
			return nil
		})
	},
}

var itemsDeleteCmd = &cobra.Command{
	Use:   "items:delete <code>",
	Short: "Remove an item from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			if err := a.items.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %s\n", args[0])
			return nil
		})
	},
}

// itemFromFlags applies the flags that were set on top of base.
func itemFromFlags(cmd *cobra.Command, base entity.Item) (entity.Item, error) {
	f := cmd.Flags()
	if f.Changed("code") {
		base.Code, _ = f.GetString("code")
	}
	if f.Changed("name") {
		base.Name, _ = f.GetString("name")
	}
	if f.Changed("description") {
		base.Description, _ = f.GetString("description")
	}
	if f.Changed("category") {
		base.Category, _ = f.GetString("category")
	}
	if f.Changed("supplier") {
		base.SupplierID, _ = f.GetString("supplier")
	}
	if f.Changed("reorder") {
		base.ReorderLevel, _ = f.GetInt("reorder")
	}
	if f.Lookup("stock") != nil && f.Changed("stock") {
		base.CurrentStock, _ = f.GetInt("stock")
	}
	if f.Changed("price") {
		v, _ := f.GetString("price")
		price, err := entity.ParseMoney(v)
		if err != nil {
			return base, errs.Invalid("--price: %v", err)
		}
		base.UnitPrice = price
	}
	return base, nil
}

func itemFlags(cmd *cobra.Command, withStock bool) {
	cmd.Flags().String("name", "", "item name")
	cmd.Flags().String("description", "", "description")
	cmd.Flags().String("category", "", "category")
	cmd.Flags().String("price", "0", "unit price")
	cmd.Flags().Int("reorder", 0, "reorder level")
	cmd.Flags().String("supplier", "", "supplier ID")
	if withStock {
		cmd.Flags().String("code", "", "item code (allocated when empty)")
		cmd.Flags().Int("stock", 0, "opening stock")
	}
}

func init() {
	itemsListCmd.Flags().BoolVar(&itemsLow, "low", false, "only items at or below reorder level")
	itemsListCmd.Flags().StringVar(&itemsSupplier, "supplier", "", "only items of this supplier")
	itemsListCmd.Flags().StringVar(&itemsCategory, "category", "", "only items in this category")
	itemsListCmd.Flags().StringVar(&itemsSearch, "search", "", "match code or name")

	itemFlags(itemsCreateCmd, true)
	itemsCreateCmd.MarkFlagRequired("name")
	itemFlags(itemsUpdateCmd, false)

	rootCmd.AddCommand(itemsListCmd, itemsCreateCmd, itemsUpdateCmd, itemsDeleteCmd)
}
