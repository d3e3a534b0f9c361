package defs

import "fmt"

type AggRule string

const (
	AggMean AggRule = "mean"
	AggSum  AggRule = "sum"
	AggMax  AggRule = "max"
	AggMin  AggRule = "min"
)

type DerivedKind int

const (
	DerivedNone DerivedKind = iota
	DerivedBalance
	DerivedPrediction
)

// Metric describes one analyzable health data type: where its export lives,
// how same-day rows collapse to a daily value, and how it is drawn.
type Metric struct {
	Name          string
	File          string
	Unit          string
	Title         string
	YLabel        string
	Aggregation   AggRule
	ChartColor    string // hex, no leading '#'
	RollingColor  string
	DecimalPlaces int
	RollingWindow int

	Derived    DerivedKind
	Components map[string]string // component name -> CSV file, derived only
}

// Component CSV files shared by the derived metrics.
const (
	weightFile = "BodyMass.csv"
	intakeFile = "DietaryEnergyConsumed.csv"
	basalFile  = "BasalEnergyBurned.csv"
	activeFile = "ActiveEnergyBurned.csv"
)

var metrics = map[string]Metric{
	"body_weight": {
		Name: "body_weight", File: weightFile,
		Unit: "kg", Title: "Body Weight", YLabel: "Weight (kg)",
		Aggregation: AggMean, ChartColor: "2E86AB", RollingColor: "E63946",
		DecimalPlaces: 1, RollingWindow: DefaultRollingWindow,
	},
	"body_fat": {
		Name: "body_fat", File: "BodyFatPercentage.csv",
		Unit: "%", Title: "Body Fat Percentage", YLabel: "Body Fat (%)",
		Aggregation: AggMean, ChartColor: "F77F00", RollingColor: "D62828",
		DecimalPlaces: 1, RollingWindow: DefaultRollingWindow,
	},
	"bmi": {
		Name: "bmi", File: "BodyMassIndex.csv",
		Unit: "", Title: "Body Mass Index", YLabel: "BMI",
		Aggregation: AggMean, ChartColor: "6A994E", RollingColor: "386641",
		DecimalPlaces: 1, RollingWindow: DefaultRollingWindow,
	},
	"calorie_intake": {
		Name: "calorie_intake", File: intakeFile,
		Unit: "kcal", Title: "Calorie Intake", YLabel: "Calorie Intake (kcal)",
		Aggregation: AggSum, ChartColor: "E63946", RollingColor: "D62828",
		DecimalPlaces: 0, RollingWindow: DefaultRollingWindow,
	},
	"protein": {
		Name: "protein", File: "DietaryProtein.csv",
		Unit: "g", Title: "Protein Intake", YLabel: "Protein (g)",
		Aggregation: AggSum, ChartColor: "7209B7", RollingColor: "560BAD",
		DecimalPlaces: 1, RollingWindow: DefaultRollingWindow,
	},
	"carbohydrates": {
		Name: "carbohydrates", File: "DietaryCarbohydrates.csv",
		Unit: "g", Title: "Carbohydrate Intake", YLabel: "Carbohydrates (g)",
		Aggregation: AggSum, ChartColor: "F4A261", RollingColor: "E76F51",
		DecimalPlaces: 1, RollingWindow: DefaultRollingWindow,
	},
	"active_calories": {
		Name: "active_calories", File: activeFile,
		Unit: "kcal", Title: "Active Energy Burned", YLabel: "Active Energy (kcal)",
		Aggregation: AggSum, ChartColor: "FF6B35", RollingColor: "E55100",
		DecimalPlaces: 0, RollingWindow: DefaultRollingWindow,
	},
	"basal_calories": {
		Name: "basal_calories", File: basalFile,
		Unit: "kcal", Title: "Basal Energy Burned", YLabel: "Basal Energy (kcal)",
		Aggregation: AggSum, ChartColor: "2A9D8F", RollingColor: "264653",
		DecimalPlaces: 0, RollingWindow: DefaultRollingWindow,
	},
	"step_count": {
		Name: "step_count", File: "StepCount.csv",
		Unit: "steps", Title: "Step Count", YLabel: "Steps",
		Aggregation: AggSum, ChartColor: "43AA8B", RollingColor: "277DA1",
		DecimalPlaces: 0, RollingWindow: DefaultRollingWindow,
	},
	"walking_distance": {
		Name: "walking_distance", File: "DistanceWalkingRunning.csv",
		Unit: "km", Title: "Walking + Running Distance", YLabel: "Distance (km)",
		Aggregation: AggSum, ChartColor: "90E0EF", RollingColor: "0077B6",
		DecimalPlaces: 2, RollingWindow: DefaultRollingWindow,
	},
	"sleep_analysis": {
		Name: "sleep_analysis", File: "SleepAnalysis.csv",
		Unit: "h", Title: "Sleep Duration", YLabel: "Sleep (h)",
		Aggregation: AggSum, ChartColor: "6F2DBD", RollingColor: "4F1787",
		DecimalPlaces: 1, RollingWindow: DefaultRollingWindow,
	},
	"heart_rate": {
		Name: "heart_rate", File: "HeartRate.csv",
		Unit: "bpm", Title: "Heart Rate", YLabel: "Heart Rate (bpm)",
		Aggregation: AggMean, ChartColor: "DC2626", RollingColor: "991B1B",
		DecimalPlaces: 0, RollingWindow: DefaultRollingWindow,
	},
	"calorie_balance": {
		Name: "calorie_balance",
		Unit: "kcal", Title: "Calorie Balance", YLabel: "Balance (kcal)",
		Aggregation: AggSum, ChartColor: "9D4EDD", RollingColor: "5A189A",
		DecimalPlaces: 0, RollingWindow: DefaultRollingWindow,
		Derived: DerivedBalance,
		Components: map[string]string{
			"intake": intakeFile,
			"basal":  basalFile,
			"active": activeFile,
		},
	},
	"weight_prediction": {
		Name: "weight_prediction",
		Unit: "kg", Title: "Body Weight: Actual vs Theoretical", YLabel: "Weight (kg)",
		Aggregation: AggMean, ChartColor: "FF6B35", RollingColor: "E55100",
		DecimalPlaces: 1, RollingWindow: DefaultRollingWindow,
		Derived: DerivedPrediction,
		Components: map[string]string{
			"weight": weightFile,
			"intake": intakeFile,
			"basal":  basalFile,
			"active": activeFile,
		},
	},
}

// Category groups metrics for the -l listing.
type Category struct {
	Name    string
	Metrics []string
}

var Categories = []Category{
	{Name: "Body Composition", Metrics: []string{"body_weight", "body_fat", "bmi"}},
	{Name: "Nutrition", Metrics: []string{"calorie_intake", "protein", "carbohydrates"}},
	{Name: "Activity", Metrics: []string{"active_calories", "basal_calories", "step_count", "walking_distance"}},
	{Name: "Sleep & Vitals", Metrics: []string{"sleep_analysis", "heart_rate"}},
	{Name: "Derived", Metrics: []string{"calorie_balance", "weight_prediction"}},
}

func MetricByName(name string) (Metric, error) {
	m, ok := metrics[name]
	if !ok {
		return Metric{}, fmt.Errorf("unknown metric %q", name)
	}
	return m, nil
}

func MetricNames() []string {
	names := make([]string, 0, len(metrics))
	for _, c := range Categories {
		names = append(names, c.Metrics...)
	}
	return names
}
