package stats

// Fixed conversion policy for India salaries. 1 LPA is treated as
// 1.2 thousand USD nominally; dividing a US salary by 3 approximates
// a purchasing-power-parity comparison against Indian cost of living.
const (
	lpaToUSDK  = 1.2
	pppDivisor = 3.0
)

// LPAToUSDK converts an Indian salary in lakhs per annum to nominal
// USD thousands. Strictly increasing in lpa.
func LPAToUSDK(lpa float64) float64 {
	return lpa * lpaToUSDK
}

// PPPAdjust scales a nominal USD-thousands salary to its
// purchasing-power-parity equivalent.
func PPPAdjust(usdK float64) float64 {
	return usdK / pppDivisor
}
