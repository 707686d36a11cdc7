package requests

import (
	"strings"
	"testing"

	"github.com/JaimeStill/intake/pkg/query"
)

func TestPostgresQueries(t *testing.T) {
	b := query.NewBuilder(projection, defaultSort...)

	t.Run("page orders newest first with id tie-break", func(t *testing.T) {
		sql, args := b.BuildPage(20, 40)

		if !strings.Contains(sql, "FROM public.requests r") {
			t.Errorf("sql = %s", sql)
		}
		if !strings.Contains(sql, "ORDER BY r.created_at DESC, r.id DESC") {
			t.Errorf("sql missing ordering: %s", sql)
		}
		if len(args) != 2 || args[0] != 20 || args[1] != 40 {
			t.Errorf("args = %v, want [20 40]", args)
		}
	})

	t.Run("insert returns all columns", func(t *testing.T) {
		sql := b.BuildInsert(insertColumns...)

		want := "INSERT INTO public.requests (id, full_name, email, phone, service, message, status) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7) " +
			"RETURNING id, full_name, email, phone, service, message, status, created_at, updated_at"
		if sql != want {
			t.Errorf("sql =\n%s\nwant\n%s", sql, want)
		}
	})
}
