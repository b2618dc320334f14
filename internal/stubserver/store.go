package stubserver

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Veraticus/shawarma-forecast/internal/model"
	"github.com/shopspring/decimal"
)

type comboKey struct {
	product string
	size    string
}

// store keeps imported sales and the models trained on them in memory.
type store struct {
	now    func() time.Time
	sales  []sale
	models []model.ModelVersion
	mu     sync.RWMutex
}

func newStore(now func() time.Time) *store {
	return &store{now: now}
}

// importSales appends sales and retrains. It returns the new model version.
func (s *store) importSales(sales []sale) model.ModelVersion {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sales = append(s.sales, sales...)
	return s.trainLocked()
}

// trainLocked fits the per product/size daily mean and registers it as the
// active model.
func (s *store) trainLocked() model.ModelVersion {
	_, mae := fit(s.sales)

	for i := range s.models {
		s.models[i].IsActive = false
	}

	n := len(s.models) + 1
	version := model.ModelVersion{
		ID:        n,
		Version:   fmt.Sprintf("v%d", n),
		Path:      fmt.Sprintf("models/model_v%d.json", n),
		MAE:       mae,
		TrainedAt: s.now().UTC().Format(time.RFC3339),
		IsActive:  true,
	}
	s.models = append(s.models, version)
	return version
}

// listModels returns the registry, newest first.
func (s *store) listModels() []model.ModelVersion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ModelVersion, len(s.models))
	for i, m := range s.models {
		out[len(s.models)-1-i] = m
	}
	return out
}

// forecast predicts the day after the latest sale. ok is false while no
// model has been trained.
func (s *store) forecast() (resp model.ForecastResponse, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.models) == 0 || len(s.sales) == 0 {
		return model.ForecastResponse{}, false
	}
	active := s.models[len(s.models)-1]

	means, _ := fit(s.sales)

	var total float64
	breakdown := make([]model.BreakdownItem, 0, len(means))
	for key, mean := range means {
		qty := decimal.NewFromFloat(mean).Round(0)
		if !qty.IsPositive() {
			continue
		}
		q := qty.InexactFloat64()
		breakdown = append(breakdown, model.BreakdownItem{
			ProductName:       key.product,
			Size:              key.size,
			PredictedQuantity: q,
		})
		total += q
	}

	sort.Slice(breakdown, func(i, j int) bool {
		a, b := breakdown[i], breakdown[j]
		if a.PredictedQuantity != b.PredictedQuantity {
			return a.PredictedQuantity > b.PredictedQuantity
		}
		if a.ProductName != b.ProductName {
			return a.ProductName < b.ProductName
		}
		return a.Size < b.Size
	})

	mae := active.MAE
	return model.ForecastResponse{
		TotalPredictedQuantity: &total,
		Date:                   latestDate(s.sales).AddDate(0, 0, 1).Format(dateLayout),
		Breakdown:              breakdown,
		ModelVersion:           active.Version,
		MAE:                    &mae,
	}, true
}

// fit returns the mean daily quantity per product/size and the mean absolute
// error of those means over the training days.
func fit(sales []sale) (map[comboKey]float64, float64) {
	daily := make(map[comboKey]map[time.Time]int)
	for _, s := range sales {
		// Unpriced combinations are never forecast.
		if s.unitPrice <= 0 {
			continue
		}
		key := comboKey{product: s.product, size: s.size}
		if daily[key] == nil {
			daily[key] = make(map[time.Time]int)
		}
		daily[key][s.date] += s.quantity
	}

	means := make(map[comboKey]float64, len(daily))
	errSum := decimal.Zero
	points := 0
	for key, days := range daily {
		sum := decimal.Zero
		for _, qty := range days {
			sum = sum.Add(decimal.NewFromInt(int64(qty)))
		}
		mean := sum.Div(decimal.NewFromInt(int64(len(days))))
		means[key] = mean.InexactFloat64()

		for _, qty := range days {
			errSum = errSum.Add(decimal.NewFromInt(int64(qty)).Sub(mean).Abs())
			points++
		}
	}

	if points == 0 {
		return means, 0
	}
	return means, errSum.Div(decimal.NewFromInt(int64(points))).InexactFloat64()
}

func latestDate(sales []sale) time.Time {
	var latest time.Time
	for _, s := range sales {
		if s.date.After(latest) {
			latest = s.date
		}
	}
	return latest
}
