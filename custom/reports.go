// Package custom holds extensions wired in through the cmd and cron registries. It is imported for
// its side effects by the CLI entrypoint.
package custom

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"procure.GO/cmd"
	"procure.GO/config"
	"procure.GO/cron"
	"procure.GO/model/entity"
	"procure.GO/model/repository"
	itemRepo "procure.GO/model/repository/item"
	salesRepo "procure.GO/model/repository/sales"
)

// SalesDigestJobName is the registry name of the daily sales summary.
const SalesDigestJobName = "salesdigest"

// CategoryValue is the stock on hand of one category valued at unit price.
type CategoryValue struct {
	Category string
	Items    int
	Units    int
	Value    decimal.Decimal
}

// StockValueByCategory groups items by category, sorted by name. Items without a category are
// reported under "-".
func StockValueByCategory(items []entity.Item) []CategoryValue {
	byCat := make(map[string]*CategoryValue)
	for _, it := range items {
		cat := it.Category
		if cat == "" {
			cat = "-"
		}
		cv, ok := byCat[cat]
		if !ok {
			cv = &CategoryValue{Category: cat, Value: decimal.Zero}
			byCat[cat] = cv
		}
		cv.Items++
		cv.Units += it.CurrentStock
		cv.Value = cv.Value.Add(it.StockValue())
	}
	out := make([]CategoryValue, 0, len(byCat))
	for _, cv := range byCat {
		out = append(out, *cv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Digest summarizes the sales of one day.
type Digest struct {
	Day      time.Time
	Sales    int
	Units    int
	Revenue  decimal.Decimal
	TopItem  string
	TopUnits int
}

func SalesDigest(sales []entity.DailySales, day time.Time) Digest {
	d := Digest{Day: day, Revenue: decimal.Zero}
	units := make(map[string]int)
	for _, s := range sales {
		if !s.Date.Equal(day) {
			continue
		}
		d.Sales++
		d.Units += s.Quantity
		d.Revenue = d.Revenue.Add(s.SalesAmount())
		units[s.ItemCode] += s.Quantity
	}
	for code, n := range units {
		if n > d.TopUnits || (n == d.TopUnits && code < d.TopItem) {
			d.TopItem, d.TopUnits = code, n
		}
	}
	return d
}

func storageRoot(c *cobra.Command) string {
	if c != nil {
		if v, err := c.Flags().GetString("storage"); err == nil && v != "" {
			return v
		}
	}
	config.LoadAppConfig()
	return config.AppConfig.StorageRoot
}

func repoOptions() []repository.Option {
	config.LoadAppConfig()
	return []repository.Option{repository.WithDelimiter(config.AppConfig.Delimiter())}
}

var stockValueCmd = &cobra.Command{
	Use:   "report:stock-value",
	Short: "Stock on hand valued at unit price, per category",
	RunE: func(c *cobra.Command, args []string) error {
		items, err := itemRepo.NewItemRepository(storageRoot(c), repoOptions()...).List()
		if err != nil {
			return err
		}
		total := decimal.Zero
		out := c.OutOrStdout()
		fmt.Fprintf(out, "%-20s %6s %8s %12s\n", "CATEGORY", "ITEMS", "UNITS", "VALUE")
		for _, cv := range StockValueByCategory(items) {
			fmt.Fprintf(out, "%-20s %6d %8d %12s\n", cv.Category, cv.Items, cv.Units, entity.FormatMoney(cv.Value))
			total = total.Add(cv.Value)
		}
		fmt.Fprintf(out, "%-20s %6s %8s %12s\n", "TOTAL", "", "", entity.FormatMoney(total))
		return nil
	},
}

func init() {
	cmd.Register(stockValueCmd)

	cron.Register(SalesDigestJobName, "@daily", func(args ...string) {
		day := entity.Today().AddDate(0, 0, -1)
		if len(args) > 0 {
			if d, err := entity.ParseDate(args[0]); err == nil && !d.IsZero() {
				day = d
			}
		}
		sales, err := salesRepo.NewSalesRepository(storageRoot(nil), repoOptions()...).Between(day, day)
		if err != nil {
			log.Printf("cron: %s: %v", SalesDigestJobName, err)
			return
		}
		d := SalesDigest(sales, day)
		log.Printf("cron: sales %s: %d sale(s), %d unit(s), revenue %s, top item %s (%d)",
			entity.FormatDate(d.Day), d.Sales, d.Units, entity.FormatMoney(d.Revenue), d.TopItem, d.TopUnits)
	})
}
