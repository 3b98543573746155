package github

import "testing"

func TestCalcRankZeroActivity(t *testing.T) {
	got := calcRank(0, 0, 0, 0, 0, 0)
	if got.Level != "C" {
		t.Errorf("calcRank(zeros).Level = %q, expected \"C\"", got.Level)
	}
	if got.Percentile != 100 {
		t.Errorf("calcRank(zeros).Percentile = %v, expected 100", got.Percentile)
	}
}

func TestCalcRankHighActivity(t *testing.T) {
	got := calcRank(5000, 1000, 500, 100, 20000, 5000)
	if got.Level != "S" {
		t.Errorf("calcRank(high).Level = %q, expected \"S\"", got.Level)
	}
	if got.Percentile > 1 {
		t.Errorf("calcRank(high).Percentile = %v, expected <= 1", got.Percentile)
	}
}

func TestCalcRankMonotonic(t *testing.T) {
	base := calcRank(100, 10, 5, 1, 50, 10)
	better := calcRank(200, 20, 10, 2, 100, 20)
	if better.Percentile >= base.Percentile {
		t.Errorf("percentile did not improve: base %v, better %v", base.Percentile, better.Percentile)
	}
}

func TestCalcRankMidLevels(t *testing.T) {
	mid := calcRank(250, 50, 25, 2, 50, 10)
	if mid.Level == "S" || mid.Level == "C" {
		t.Errorf("calcRank(medians).Level = %q, expected a mid level", mid.Level)
	}
}

func TestExponentialCDFBounds(t *testing.T) {
	if got := exponentialCDF(0); got != 0 {
		t.Errorf("exponentialCDF(0) = %v, expected 0", got)
	}
	if got := exponentialCDF(1); got != 0.5 {
		t.Errorf("exponentialCDF(1) = %v, expected 0.5", got)
	}
}
