// This package contains all the types and the forecast pipeline for the
// shadow transit forecaster: given a snapshot of airborne traffic, predict
// when the sun- (or moon-) cast ground shadow of any aircraft will sweep
// across a fixed home point, and raise an alert beforehand. No network
// imports; the feed adapters live in their own packages.
package shadowcast

const(
	// Unit conversions; the feeds report in aviation units, the core works in SI
	KKnotsToMPS   = 0.514444
	KFeetToMeters = 0.3048
)
