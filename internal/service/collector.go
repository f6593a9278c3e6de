package service

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"energypredictor/internal/features"
	"energypredictor/internal/model"
	"energypredictor/internal/utils"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation wraps every input problem reported to the caller
	ErrValidation = errors.New("invalid input")
	// ErrInvalidDate is returned for dates that do not exist on the calendar
	ErrInvalidDate = errors.New("invalid date")
)

// Collector turns a PredictRequest into a RawInput
type Collector struct {
	validate *validator.Validate
	loc      *time.Location
	now      func() time.Time
}

// NewCollector creates a collector. loc decides what "today" means when a
// request carries no date; nil means UTC.
func NewCollector(loc *time.Location) *Collector {
	if loc == nil {
		loc = time.UTC
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Collector{validate: v, loc: loc, now: time.Now}
}

// Collect validates req and returns the normalised input
func (c *Collector) Collect(req *model.PredictRequest) (features.RawInput, error) {
	if req == nil {
		return features.RawInput{}, fmt.Errorf("%w: empty request", ErrValidation)
	}

	if err := c.validate.Struct(req); err != nil {
		return features.RawInput{}, fmt.Errorf("%w: %s", ErrValidation, describe(err))
	}

	for name, x := range map[string]float64{
		"house_size_sqft":      req.HouseSizeSqft,
		"monthly_income":       req.MonthlyIncome,
		"outside_temp_celsius": req.OutsideTempCelsius,
	} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return features.RawInput{}, fmt.Errorf("%w: %s must be a finite number", ErrValidation, name)
		}
	}

	heating, ok := utils.NormalizeHeatingType(req.HeatingType)
	if !ok {
		return features.RawInput{}, fmt.Errorf("%w: heating_type %q is not one of Electric, Gas, None", ErrValidation, req.HeatingType)
	}
	cooling, ok := utils.NormalizeCoolingType(req.CoolingType)
	if !ok {
		return features.RawInput{}, fmt.Errorf("%w: cooling_type %q is not one of AC, Fan, None", ErrValidation, req.CoolingType)
	}
	override, ok := utils.NormalizeManualOverride(req.ManualOverride)
	if !ok {
		return features.RawInput{}, fmt.Errorf("%w: manual_override %q is not one of Yes, No", ErrValidation, req.ManualOverride)
	}

	date, err := c.date(req)
	if err != nil {
		return features.RawInput{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return features.RawInput{
		Occupants:           req.Occupants,
		HouseSizeSqft:       req.HouseSizeSqft,
		MonthlyIncome:       req.MonthlyIncome,
		OutsideTempCelsius:  req.OutsideTempCelsius,
		Date:                date,
		HeatingType:         heating,
		CoolingType:         cooling,
		ManualOverride:      override,
		EnergyStarCertified: req.EnergyStarCertified,
	}, nil
}

// Features collects req and derives its feature vector
func (c *Collector) Features(req *model.PredictRequest) (*model.FeaturesResponse, error) {
	raw, err := c.Collect(req)
	if err != nil {
		return nil, err
	}
	return &model.FeaturesResponse{
		Schema:   features.SchemaName,
		Input:    model.NewInputSummary(raw),
		Season:   string(features.SeasonForMonth(raw.Date.Month())),
		Weekday:  features.Weekday(raw.Date),
		Features: features.Derive(raw),
	}, nil
}

// date resolves the civil date of the request as midnight UTC
func (c *Collector) date(req *model.PredictRequest) (time.Time, error) {
	if s := strings.TrimSpace(req.Date); s != "" {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, s)
		}
		return d, nil
	}

	if req.Year == 0 && req.Month == 0 && req.Day == 0 {
		y, m, d := c.now().In(c.loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	if req.Year == 0 || req.Month == 0 || req.Day == 0 {
		return time.Time{}, fmt.Errorf("%w: year, month and day are all required", ErrInvalidDate)
	}

	d := time.Date(req.Year, time.Month(req.Month), req.Day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises overflow (Feb 30 -> Mar 2); a round trip catches it.
	if d.Year() != req.Year || int(d.Month()) != req.Month || d.Day() != req.Day {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d does not exist", ErrInvalidDate, req.Year, req.Month, req.Day)
	}
	return d, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
