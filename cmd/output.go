package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"procure.GO/core/errs"
	"procure.GO/model/entity"
)

func table(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...interface{}) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func dateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	v, _ := cmd.Flags().GetString(name)
	t, err := entity.ParseDate(v)
	if err != nil {
		return time.Time{}, errs.Invalid("--%s: %v", name, err)
	}
	return t, nil
}

// actor returns the --as user, which commands that change documents require.
func actor() (string, error) {
	if actorFlag == "" {
		return "", errs.Invalid("--as <user id> is required")
	}
	return actorFlag, nil
}
