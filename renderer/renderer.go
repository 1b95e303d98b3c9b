// Package renderer turns ledger data into markdown for terminal display.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/moneystream"
)

// Transaction renders a transaction to a one-line string.
func Transaction(t moneystream.Transaction) string {
	settled := ""
	if t.Settled {
		settled = " (已结)"
	}
	return fmt.Sprintf("#%d %s %s %s/%s %s %s%s", t.ID, t.Date, t.Type, t.Category, t.Subcategory, t.Amount, t.Account, settled)
}

// Transactions renders a transaction listing as a markdown table.
func Transactions(txs []moneystream.Transaction) string {
	var b strings.Builder
	b.WriteString("| ID | 日期 | 类型 | 类别 | 子类别 | 金额 | 账户 | 商户 | 商品 | 已结 |\n")
	b.WriteString("|---:|------|------|------|--------|-----:|------|------|------|:----:|\n")
	for _, t := range txs {
		settled := "否"
		if t.Settled {
			settled = "是"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			t.ID, t.Date, t.Type, t.Category, t.Subcategory, t.Amount.Fixed(), t.Account, t.Merchant, t.Item, settled)
	}
	return b.String()
}

// Summary renders income/expense totals.
func Summary(s moneystream.Summary) string {
	var b strings.Builder
	b.WriteString("| 总收入 | 总支出 | 净收入 | 笔数 |\n")
	b.WriteString("|-------:|-------:|-------:|-----:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %d |\n", s.Income, s.Expense, s.Net, s.Count)
	return b.String()
}

// MonthlyByCategory renders the month-by-category aggregation.
func MonthlyByCategory(rows []moneystream.MonthCategoryTotal) string {
	var b strings.Builder
	b.WriteString("| 月份 | 类别 | 金额 |\n")
	b.WriteString("|------|------|-----:|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", r.Month, r.Category, r.Total.Fixed())
	}
	return b.String()
}

// SubcategoryTotals renders a category's subcategory breakdown.
func SubcategoryTotals(category string, rows []moneystream.SubcategoryTotal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", category)
	b.WriteString("| 子类别 | 金额 |\n")
	b.WriteString("|--------|-----:|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s |\n", r.Subcategory, r.Total.Fixed())
	}
	return b.String()
}

// AccountOverview renders balances grouped by account type, with the
// accounts of each type listed beneath the total.
func AccountOverview(byType []moneystream.TypeBalance, accounts []moneystream.Account) string {
	var b strings.Builder
	for _, tb := range byType {
		fmt.Fprintf(&b, "## %s\n\n", tb.Type)
		fmt.Fprintf(&b, "账户数 %d，合计 %s\n\n", tb.Count, tb.Total)
		for _, a := range accounts {
			if a.Type != tb.Type || !a.IsValid {
				continue
			}
			locked := ""
			if a.IsLocked {
				locked = " 🔒"
			}
			fmt.Fprintf(&b, "- **%s**%s %s\n", a.Name, locked, a.Balance)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Drifts renders a balance drift report.
func Drifts(drifts []moneystream.Drift) string {
	if len(drifts) == 0 {
		return "所有账户余额与交易历史一致。\n"
	}
	var b strings.Builder
	b.WriteString("| 账户 | 记录余额 | 推算余额 | 差额 |\n")
	b.WriteString("|------|---------:|---------:|-----:|\n")
	for _, d := range drifts {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", d.Account, d.Recorded.Fixed(), d.Derived.Fixed(), d.Diff().Fixed())
	}
	return b.String()
}
