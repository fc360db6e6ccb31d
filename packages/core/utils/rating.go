package utils

import (
	"math"

	"core/models"
)

const (
	// beta is the performance variance of a single player around their
	// skill, half the default sigma as in the usual TrueSkill setup.
	beta = models.DefaultSigma / 2

	// muEloScale maps a change in mu to display elo points.
	muEloScale = 100.0

	// scoreInfluenceFactor scales the margin-of-victory bonus.
	scoreInfluenceFactor = 0.05

	// underdogBonusFactor scales the upset bonus when the winning squad
	// had the strictly lower expected outcome.
	underdogBonusFactor = 0.15

	// sigmaVarianceFloor keeps posterior variance strictly positive.
	sigmaVarianceFloor = 1e-4
)

// UpdateRatings applies one match result to both rosters and returns the
// posterior states in roster order. Inputs are never mutated. The elo delta
// of each player lands in the returned snapshot's EloChange.
//
// When rosters differ in size the smaller one is padded with synthetic
// members at the mean mu/sigma of its real members; synthetics shape the
// Bayesian update but produce no output entry.
func UpdateRatings(squadA, squadB []models.RatingSnapshot, scoreA, scoreB int, multiplier float64) ([]models.RatingSnapshot, []models.RatingSnapshot, error) {
	if len(squadA) == 0 || len(squadB) == 0 {
		return nil, nil, models.NewValidationError("both squads need at least one player")
	}
	if scoreA < 0 || scoreB < 0 {
		return nil, nil, models.NewValidationError("scores must not be negative")
	}
	if scoreA == scoreB {
		return nil, nil, models.NewValidationError("tied scores are not supported")
	}
	if multiplier <= 0 {
		return nil, nil, models.NewValidationError("invalid weight multiplier %v", multiplier)
	}

	aWins := scoreA > scoreB

	size := len(squadA)
	if len(squadB) > size {
		size = len(squadB)
	}
	muSumA, varSumA := paddedSums(squadA, size)
	muSumB, varSumB := paddedSums(squadB, size)

	// Variance of the performance difference between the two sides,
	// synthetic members included.
	c2 := float64(2*size)*beta*beta + varSumA + varSumB
	c := math.Sqrt(c2)

	muWin, muLose := muSumA, muSumB
	if !aWins {
		muWin, muLose = muSumB, muSumA
	}
	t := (muWin - muLose) / c
	v := truncatedGain(t)
	w := v * (v + t)

	scoreInf := scoreInfluence(scoreA, scoreB)
	underdogInf := underdogInfluence(averageElo(squadA), averageElo(squadB), aWins)

	newA := updateSide(squadA, c, c2, v, w, aWins, scoreInf, underdogInf, multiplier)
	newB := updateSide(squadB, c, c2, v, w, !aWins, scoreInf, underdogInf, multiplier)
	return newA, newB, nil
}

// paddedSums returns the side's mu sum and sigma-squared sum as if the
// roster had `size` members, the missing ones being average copies.
func paddedSums(side []models.RatingSnapshot, size int) (muSum, varSum float64) {
	for _, p := range side {
		muSum += p.Mu
		varSum += p.Sigma * p.Sigma
	}
	missing := size - len(side)
	if missing > 0 {
		n := float64(len(side))
		meanMu := muSum / n
		meanSigma := sigmaMean(side)
		muSum += float64(missing) * meanMu
		varSum += float64(missing) * meanSigma * meanSigma
	}
	return muSum, varSum
}

func sigmaMean(side []models.RatingSnapshot) float64 {
	var sum float64
	for _, p := range side {
		sum += p.Sigma
	}
	return sum / float64(len(side))
}

func updateSide(side []models.RatingSnapshot, c, c2, v, w float64, won bool, scoreInf, underdogInf, multiplier float64) []models.RatingSnapshot {
	out := make([]models.RatingSnapshot, len(side))
	for i, p := range side {
		sigma2 := p.Sigma * p.Sigma

		muPrime := p.Mu + sigma2/c*v
		if !won {
			muPrime = p.Mu - sigma2/c*v
		}
		sigmaPrime := p.Sigma * math.Sqrt(math.Max(1-sigma2/c2*w, sigmaVarianceFloor))

		baseDelta := (muPrime - p.Mu) * muEloScale
		raw := baseDelta * scoreInf
		if won {
			raw *= underdogInf
		} else {
			raw /= underdogInf
		}
		delta := int(math.Round(raw * multiplier))

		next := p
		next.Mu = muPrime
		next.Sigma = sigmaPrime
		next.Elo = p.Elo + delta
		next.EloChange = delta
		if next.Elo > next.HighestElo {
			next.HighestElo = next.Elo
		}
		if won {
			next.Wins++
			next.WinStreak++
			next.LossStreak = 0
			if next.WinStreak > next.LongestWinStreak {
				next.LongestWinStreak = next.WinStreak
			}
		} else {
			next.Losses++
			next.LossStreak++
			next.WinStreak = 0
		}
		next.WinPercent = models.WinPercentFor(next.Wins, next.Losses)
		out[i] = next
	}
	return out
}

// scoreInfluence rewards decisive margins: 1 + 0.05*sqrt(margin/total).
func scoreInfluence(scoreA, scoreB int) float64 {
	total := scoreA + scoreB
	if total == 0 {
		return 1
	}
	margin := scoreA - scoreB
	if margin < 0 {
		margin = -margin
	}
	return 1 + scoreInfluenceFactor*math.Sqrt(float64(margin)/float64(total))
}

// underdogInfluence boosts upsets. The boost applies only when the winning
// squad's expected outcome was strictly below even; at equal average elo
// the factor is exactly 1.
func underdogInfluence(avgEloA, avgEloB float64, aWins bool) float64 {
	diff := avgEloA - avgEloB
	expectedA := 1 / (1 + math.Pow(10, -diff/400))
	expectedWinner := expectedA
	if !aWins {
		expectedWinner = 1 - expectedA
	}
	if expectedWinner >= 0.5 {
		return 1
	}
	return 1 + (1-expectedWinner)*underdogBonusFactor
}

func averageElo(side []models.RatingSnapshot) float64 {
	var sum float64
	for _, p := range side {
		sum += float64(p.Elo)
	}
	return sum / float64(len(side))
}

// truncatedGain is v(t) = N(t)/Phi(t), the mean additional performance of
// the winning side given that it won.
func truncatedGain(t float64) float64 {
	denom := normCDF(t)
	if denom < 1e-10 {
		// Deep in the tail the ratio approaches -t.
		return -t
	}
	return normPDF(t) / denom
}

func normPDF(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}

func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}
