// Package atmos implements the synthetic atmospheric model evaluated at every
// candidate deployment point.
package atmos

// Condition names stored in a Conditions map.
const (
	Pressure    = "pressure"
	Temperature = "temperature"
	Humidity    = "humidity"
	WindSpeed   = "wind_speed"
)

const (
	// ConditionSeed seeds the condition generator on every call.
	ConditionSeed = 42

	// GlobalCoolingFactor converts spread rate to °C of cooling.
	GlobalCoolingFactor = 0.1

	// OzoneDepletionFactor converts spread rate to % ozone depletion.
	OzoneDepletionFactor = 0.05

	// BaseTemperature is the reference surface temperature in °C.
	BaseTemperature = 15.2

	// BaseOzoneLevel is the reference ozone column (arbitrary units).
	BaseOzoneLevel = 300.0
)

// Conditions maps a condition name to its value.
type Conditions map[string]float64

// ConditionsAt returns synthetic stratospheric conditions for a point.
//
// The generator is reseeded with ConditionSeed on each call, so the result is
// the same for every point: pressure in [100,300) hPa, temperature in
// [-73,-53) °C, humidity in [0,1) and wind speed in [10,30) m/s.
func ConditionsAt(latitude, longitude, altitude int) Conditions {
	g := newLCG(ConditionSeed)

	// float64() conversions keep the products from being fused into the adds.
	pressure := 100 + float64(200*g.Float64())
	temperature := -73 + float64(20*g.Float64())
	humidity := g.Float64()
	windSpeed := 10 + float64(20*g.Float64())

	return Conditions{
		Pressure:    pressure,
		Temperature: temperature,
		Humidity:    humidity,
		WindSpeed:   windSpeed,
	}
}

// AerosolSpreadRate combines the injection rate with the wind speed.
func AerosolSpreadRate(c Conditions, injectionRate float64) float64 {
	return injectionRate * (1 + c[WindSpeed]/100)
}

// CoolingEffect returns the temperature reduction in °C for a spread rate.
func CoolingEffect(spreadRate, coolingFactor float64) float64 {
	return spreadRate * coolingFactor
}

// OzoneDepletion returns the ozone depletion in percent for a spread rate.
func OzoneDepletion(spreadRate, depletionFactor float64) float64 {
	return spreadRate * depletionFactor
}

// ConvertToPercentage expresses value relative to baseline.
func ConvertToPercentage(value, baseline float64) float64 {
	return (value / baseline) * 100
}

// Evaluate simulates one deployment and returns cumulative cooling (°C)
// and cumulative ozone impact (%).
func Evaluate(latitude, longitude, altitude int, injectionRate float64) (cooling, ozoneImpact float64) {
	conditions := ConditionsAt(latitude, longitude, altitude)
	spread := AerosolSpreadRate(conditions, injectionRate)

	cooling = CoolingEffect(spread, GlobalCoolingFactor) * injectionRate
	ozoneImpact = OzoneDepletion(spread, OzoneDepletionFactor) * injectionRate
	return cooling, ozoneImpact
}
