package notifications

import (
	"fmt"
	"math/big"
	"strings"

	"nftpawn/internal/loans"
)

// Renderer turns a lifecycle event into channel-ready text. Rendering is pure
// so it is trivially testable and the dispatcher stays focused on addressing.
type Renderer struct{}

// Render produces the subject/body for one trigger. hasPreviousLender flips
// the lend wording from "your loan was funded" to "the loan was bought out".
func (Renderer) Render(event LifecycleEvent, hasPreviousLender bool) Message {
	loan := event.Loan
	terms := fmt.Sprintf("%s %s, %s, %s%% annual interest",
		formatUnits(loan.LoanAmount, loan.LoanAssetDecimals),
		loan.LoanAssetSymbol,
		formatDuration(loan.DurationSeconds),
		annualRate(loan.PerSecondInterestRate),
	)
	collateral := loan.CollateralName
	if collateral == "" {
		collateral = "your collateral"
	}
	ref := fmt.Sprintf("Loan #%s (%s)", loan.ID.String(), collateral)

	switch event.Kind {
	case TriggerMint:
		return Message{
			Subject: fmt.Sprintf("%s has been created", ref),
			Body: fmt.Sprintf(
				"%s is listed and awaiting a lender.\nRequested terms: %s.",
				ref, terms),
		}
	case TriggerLend:
		if hasPreviousLender {
			return Message{
				Subject: fmt.Sprintf("%s has a new lender", ref),
				Body: fmt.Sprintf(
					"The loan was bought out and is now held by a new lender.\nNew terms: %s.%s",
					terms, previousTerms(event.MostRecentTermsEvent, loan)),
			}
		}
		return Message{
			Subject: fmt.Sprintf("%s has been funded", ref),
			Body: fmt.Sprintf(
				"A lender accepted the loan.\nTerms: %s.\nThe repayment deadline is timestamp %d.",
				terms, loan.EndDateTimestamp),
		}
	case TriggerBuyout:
		return Message{
			Subject: fmt.Sprintf("Your position in %s was bought out", ref),
			Body: fmt.Sprintf(
				"Another lender repaid your principal plus %s %s accrued interest and took over the loan.%s",
				formatUnits(loan.AccumulatedInterest, loan.LoanAssetDecimals),
				loan.LoanAssetSymbol,
				previousTerms(event.MostRecentTermsEvent, loan)),
		}
	case TriggerRepayment:
		return Message{
			Subject: fmt.Sprintf("%s has been repaid", ref),
			Body: fmt.Sprintf(
				"The borrower repaid %s %s principal plus %s %s interest. The loan is closed.",
				formatUnits(loan.LoanAmount, loan.LoanAssetDecimals), loan.LoanAssetSymbol,
				formatUnits(loan.InterestOwed, loan.LoanAssetDecimals), loan.LoanAssetSymbol),
		}
	case TriggerCollateralSeizure:
		return Message{
			Subject: fmt.Sprintf("Collateral for %s was seized", ref),
			Body: fmt.Sprintf(
				"The loan went past due and the lender seized %s. The loan is closed.",
				collateral),
		}
	case TriggerLiquidationOccurring:
		return Message{
			Subject: fmt.Sprintf("%s can be liquidated in 24 hours", ref),
			Body: fmt.Sprintf(
				"The repayment deadline (timestamp %d) is less than 24 hours away.\nOutstanding terms: %s.",
				loan.EndDateTimestamp, terms),
		}
	case TriggerLiquidationOccurred:
		return Message{
			Subject: fmt.Sprintf("%s is past due", ref),
			Body: fmt.Sprintf(
				"The repayment deadline (timestamp %d) has passed; the collateral can now be seized.\nOutstanding terms: %s.",
				loan.EndDateTimestamp, terms),
		}
	default:
		return Message{
			Subject: fmt.Sprintf("Update on %s", ref),
			Body:    fmt.Sprintf("Current terms: %s.", terms),
		}
	}
}

func previousTerms(prev *loans.TermsEvent, loan *loans.Loan) string {
	if prev == nil {
		return ""
	}
	return fmt.Sprintf("\nPrevious terms: %s %s, %s, %s%% annual interest.",
		formatUnits(prev.LoanAmount, loan.LoanAssetDecimals),
		loan.LoanAssetSymbol,
		formatDuration(prev.DurationSeconds),
		annualRate(prev.PerSecondInterestRate),
	)
}

const secondsPerDay = 24 * 60 * 60

// interestRateDecimals is the fixed-point scale of perSecondInterestRate.
const interestRateDecimals = 8

func formatDuration(seconds int64) string {
	days := seconds / secondsPerDay
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

func annualRate(perSecond *big.Int) string {
	if perSecond == nil {
		return "0"
	}
	annual := new(big.Int).Mul(perSecond, big.NewInt(365*secondsPerDay))
	// The per-second rate is a percentage scaled by 1e8.
	return formatUnits(annual, interestRateDecimals)
}

// formatUnits renders a fixed-point big integer with the given number of
// decimals, trimming trailing zeros the way the UI does.
func formatUnits(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}
	s := amount.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if decimals <= 0 {
		if neg {
			return "-" + s
		}
		return s
	}
	for len(s) <= decimals {
		s = "0" + s
	}
	whole, frac := s[:len(s)-decimals], s[len(s)-decimals:]
	frac = strings.TrimRight(frac, "0")
	out := whole
	if frac != "" {
		out = whole + "." + frac
	}
	if neg {
		return "-" + out
	}
	return out
}
