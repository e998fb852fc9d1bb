package main

import (
	"fmt"
	"os"

	"github.com/rpgo/payroll-calculator/internal/calculation"
	"github.com/rpgo/payroll-calculator/internal/domain"
	"github.com/rpgo/payroll-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// print_prorate shows the prorated base salary for every possible attendance in a
// period, and the overtime pay of one hour, against the period's weekday count.
func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: print_prorate <YYYY-MM> <contract-salary>")
		return
	}
	period, err := domain.ParsePeriod(os.Args[1])
	if err != nil {
		panic(err)
	}
	salary, err := decimal.NewFromString(os.Args[2])
	if err != nil {
		panic(err)
	}

	std := decimal.NewFromInt(int64(period.WorkingDays()))
	fmt.Printf("Period %s: %d calendar days, %s weekdays\n",
		period, dateutil.DaysInMonth(period.Year, period.Month), std)

	daily, err := calculation.DailyRate(salary, std)
	if err != nil {
		panic(err)
	}
	hour, err := calculation.OvertimePay(salary, std, decimal.NewFromInt(1), domain.DefaultOvertimeMultiplier)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Daily rate: %s\n", daily.StringFixed(2))
	fmt.Printf("Overtime per hour at %s: %s\n", domain.DefaultOvertimeMultiplier, hour.StringFixed(2))

	fmt.Println("ActualDays,Prorated")
	for day := int64(0); day <= std.IntPart(); day++ {
		prorated, err := calculation.ProrateSalary(salary, std, decimal.NewFromInt(day))
		if err != nil {
			panic(err)
		}
		fmt.Printf("%d,%s\n", day, prorated.StringFixed(0))
	}
}
