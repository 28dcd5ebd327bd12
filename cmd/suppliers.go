package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"procure.GO/model/entity"
)

var (
	supplierSearch string
	newSupplier    entity.Supplier
)

var suppliersListCmd = &cobra.Command{
	Use:   "suppliers:list",
	Short: "List suppliers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			list, err := a.suppliers.Search(supplierSearch)
			if err != nil {
				return err
			}
			tw := table(cmd.OutOrStdout(), "ID", "COMPANY", "CONTACT", "PHONE", "EMAIL", "CITY")
			for _, s := range list {
				row(tw, s.ID, s.CompanyName, s.ContactPerson, s.Phone, s.Email, entity.ParseAddress(s.Address).City)
			}
			return tw.Flush()
		})
	},
}

var suppliersCreateCmd = &cobra.Command{
	Use:   "suppliers:create",
	Short: "Add a supplier",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			s := newSupplier
			if err := a.suppliers.Create(&s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created supplier %s\n", s.ID)
			return nil
		})
	},
}

var suppliersItemsCmd = &cobra.Command{
	Use:   "suppliers:items <id>",
	Short: "List the items a supplier provides",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			list, err := a.suppliers.SuppliedItems(args[0], a.items)
			if err != nil {
				return err
			}
			tw := table(cmd.OutOrStdout(), "CODE", "NAME", "PRICE", "STOCK")
			for _, it := range list {
				row(tw, it.Code, it.Name, entity.FormatMoney(it.UnitPrice), it.CurrentStock)
			}
			return tw.Flush()
		})
	},
}

func init() {
	suppliersListCmd.Flags().StringVar(&supplierSearch, "search", "", "match company or contact name")

	f := suppliersCreateCmd.Flags()
	f.StringVar(&newSupplier.ID, "id", "", "supplier ID (allocated when empty)")
	f.StringVar(&newSupplier.CompanyName, "company", "", "company name")
	f.StringVar(&newSupplier.ContactPerson, "contact", "", "contact person")
	f.StringVar(&newSupplier.Phone, "phone", "", "phone")
	f.StringVar(&newSupplier.Email, "email", "", "email")
	f.StringVar(&newSupplier.Address, "address", "", "postal address")
	suppliersCreateCmd.MarkFlagRequired("company")

	rootCmd.AddCommand(suppliersListCmd, suppliersCreateCmd, suppliersItemsCmd)
}
