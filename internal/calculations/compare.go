package calculations

// CompareExtraPayment сравнивает график с досрочными платежами с тем же кредитом без них
func CompareExtraPayment(terms LoanTerms) (*ExtraPaymentComparison, error) {
	withExtra, err := Generate(terms)
	if err != nil {
		return nil, err
	}

	baseTerms := terms
	baseTerms.ExtraPayment = 0
	baseline, err := Generate(baseTerms)
	if err != nil {
		return nil, err
	}

	return &ExtraPaymentComparison{
		Baseline:        baseline,
		WithExtra:       withExtra,
		PeriodsSaved:    baseline.Len() - withExtra.Len(),
		InterestSaved:   baseline.TotalInterest() - withExtra.TotalInterest(),
		BaselinePayoff:  baseline.PayoffDate(),
		WithExtraPayoff: withExtra.PayoffDate(),
	}, nil
}
