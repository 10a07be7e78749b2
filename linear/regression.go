// Package linear は単回帰 y = slope*x + intercept をストリーミングで推定します。
//
// 直近 capacity 点だけを保持し、Calculate のたびに閉形式の最小二乗解を求めます。
// 係数は Coefficients として9バイトの固定レイアウトで保存・復元できます。
package linear

import (
	"context"
	"math/big"

	"github.com/YuminosukeSato/edgeml/core/buffer"
	"github.com/YuminosukeSato/edgeml/core/model"
	"github.com/YuminosukeSato/edgeml/pkg/errors"
	"github.com/YuminosukeSato/edgeml/pkg/log"
	"github.com/YuminosukeSato/edgeml/sensor"
	"gonum.org/v1/gonum/floats"
)

// DefaultCapacity は推奨される保持点数
const DefaultCapacity = 100

type point struct {
	x, y int64
}

// sums は再計算モードで使う最小二乗の十分統計量
type sums struct {
	n                int
	sx, sx2, sy, sxy float64
}

// fit は閉形式の解を返す。X がすべて同じなら constantX が true になる。
func (s sums) fit() (slope, intercept float64, constantX bool) {
	n := float64(s.n)
	denominator := n*s.sx2 - s.sx*s.sx
	if denominator == 0 {
		return 0, s.sy / n, true
	}
	slope = (n*s.sxy - s.sx*s.sy) / denominator
	return slope, (s.sy - slope*s.sx) / n, false
}

// exactSums は逐次更新モードの十分統計量。
// 点を取り除いたときに桁落ちしないよう、整数のまま正確に保持する。
type exactSums struct {
	n                int
	sx, sx2, sy, sxy big.Int

	// 作業領域
	x, y, t big.Int
}

func (s *exactSums) add(p point) {
	s.n++
	s.accumulate(p, (*big.Int).Add)
}

func (s *exactSums) remove(p point) {
	s.n--
	s.accumulate(p, (*big.Int).Sub)
}

func (s *exactSums) accumulate(p point, op func(z, a, b *big.Int) *big.Int) {
	s.x.SetInt64(p.x)
	s.y.SetInt64(p.y)
	op(&s.sx, &s.sx, &s.x)
	op(&s.sy, &s.sy, &s.y)
	op(&s.sx2, &s.sx2, s.t.Mul(&s.x, &s.x))
	op(&s.sxy, &s.sxy, s.t.Mul(&s.x, &s.y))
}

func (s *exactSums) reset() {
	s.n = 0
	s.sx.SetInt64(0)
	s.sx2.SetInt64(0)
	s.sy.SetInt64(0)
	s.sxy.SetInt64(0)
}

// fit は sums.fit と同じ解を有理数で求め、最後に float64 に丸める
func (s *exactSums) fit() (slope, intercept float64, constantX bool) {
	n := new(big.Int).SetInt64(int64(s.n))
	denominator := new(big.Int).Mul(n, &s.sx2)
	denominator.Sub(denominator, s.t.Mul(&s.sx, &s.sx))
	if denominator.Sign() == 0 {
		intercept, _ = new(big.Rat).SetFrac(&s.sy, n).Float64()
		return 0, intercept, true
	}

	numerator := new(big.Int).Mul(n, &s.sxy)
	numerator.Sub(numerator, s.t.Mul(&s.sx, &s.sy))
	slope, _ = new(big.Rat).SetFrac(numerator, denominator).Float64()

	// intercept = (Σy·Σx² - Σx·Σxy) / denominator
	numerator.Mul(&s.sy, &s.sx2)
	numerator.Sub(numerator, s.t.Mul(&s.sx, &s.sxy))
	intercept, _ = new(big.Rat).SetFrac(numerator, denominator).Float64()
	return slope, intercept, false
}

// StreamingRegression は容量固定のリングバッファ上の単回帰モデル
type StreamingRegression struct {
	points *buffer.Ring[point]

	// incremental が true のときは running を点の出入りに合わせて更新する
	incremental bool
	running     exactSums

	// xs, ys は再計算モードの作業領域（構築時に確保）
	xs, ys []float64

	slope     float64
	intercept float64
	valid     bool

	ticks  sensor.TickCounter
	logger log.Logger
}

// NewStreamingRegression は最大 capacity 点を保持するモデルを作成する
func NewStreamingRegression(capacity int, opts ...Option) (*StreamingRegression, error) {
	points, err := buffer.NewRing[point](capacity, nil)
	if err != nil {
		return nil, errors.Wrap(err, "NewStreamingRegression")
	}
	r := &StreamingRegression{points: points}
	for _, opt := range opts {
		opt(r)
	}
	if !r.incremental {
		r.xs = make([]float64, capacity)
		r.ys = make([]float64, capacity)
	}
	if r.ticks == nil {
		r.ticks = sensor.NewMillisCounter(nil)
	}
	if r.logger == nil {
		r.logger = model.NewLogger("linear.streaming", "StreamingRegression")
	}
	return r, nil
}

// Add は点 (x, y) を追加する。満杯なら最も古い点を捨てる。
func (r *StreamingRegression) Add(x, y int64) {
	full := r.points.IsFull()
	p := point{x: x, y: y}
	r.points.Push(func(slot *point) {
		if r.incremental {
			if full {
				r.running.remove(*slot)
			}
			r.running.add(p)
		}
		*slot = p
	})
	if full && r.logger.Enabled(context.Background(), log.LevelDebug) {
		r.logger.Debug("point evicted", log.CapacityKey, r.points.Cap())
	}
}

// Acquire は src のチャネル xChannel を X、yChannel を Y として1点読み込む。
// 読み込みに失敗した場合（パニックを含む）は点を追加せずにエラーを返す。
func (r *StreamingRegression) Acquire(src sensor.Source, xChannel, yChannel int) error {
	var x, y int
	err := errors.SafeExecute("StreamingRegression.Acquire", func() error {
		var err error
		if x, err = src.Read(xChannel); err != nil {
			return err
		}
		y, err = src.Read(yChannel)
		return err
	})
	if err != nil {
		r.logger.Warn("acquisition failed", err, log.OperationKey, log.OperationAcquire)
		return errors.Wrap(err, "StreamingRegression.Acquire")
	}
	r.Add(int64(x), int64(y))
	return nil
}

// AcquireTimed は src の channel を X、TickCounter の現在値を Y として1点読み込む
func (r *StreamingRegression) AcquireTimed(src sensor.Source, channel int) error {
	var x int
	err := errors.SafeExecute("StreamingRegression.AcquireTimed", func() error {
		var err error
		x, err = src.Read(channel)
		return err
	})
	if err != nil {
		r.logger.Warn("acquisition failed", err, log.OperationKey, log.OperationAcquire)
		return errors.Wrap(err, "StreamingRegression.AcquireTimed")
	}
	r.Add(int64(x), r.ticks.Millis())
	return nil
}

func (r *StreamingRegression) recomputeSums() sums {
	n := r.points.Len()
	xs, ys := r.xs[:n], r.ys[:n]
	for i, p := range r.points.All() {
		xs[i] = float64(p.x)
		ys[i] = float64(p.y)
	}
	return sums{
		n:   n,
		sx:  floats.Sum(xs),
		sx2: floats.Dot(xs, xs),
		sy:  floats.Sum(ys),
		sxy: floats.Dot(xs, ys),
	}
}

// Calculate は保持している点から係数を求める。
//   - 2点未満: slope=0, intercept=0, 無効
//   - X がすべて同じ: slope=0, intercept=mean(Y), 有効
//   - それ以外: 閉形式の最小二乗解, 有効
//
// 結果が有限値にならない場合は係数を初期値（0, 0, 無効）にしたまま
// NumericalInstabilityError を返す。
func (r *StreamingRegression) Calculate() error {
	n := r.points.Len()
	r.slope, r.intercept, r.valid = 0, 0, false
	if n < 2 {
		r.logger.Debug("not enough points", log.OperationKey, log.OperationCalculate, log.SamplesKey, n)
		return nil
	}

	var slope, intercept float64
	var constantX bool
	if r.incremental {
		slope, intercept, constantX = r.running.fit()
	} else {
		slope, intercept, constantX = r.recomputeSums().fit()
	}
	if constantX {
		r.logger.Debug("constant x, using mean of y", log.OperationKey, log.OperationCalculate, log.SamplesKey, n)
	}
	if err := errors.CheckNumericalStability("StreamingRegression.Calculate", []float64{slope, intercept}, n); err != nil {
		return err
	}

	r.slope, r.intercept, r.valid = slope, intercept, true
	r.logger.Debug("coefficients updated",
		log.OperationKey, log.OperationCalculate,
		log.SlopeKey, slope,
		log.InterceptKey, intercept,
	)
	return nil
}

// Predict は slope*x + intercept を返す。Calculate 前は 0 を返すので
// IsValidCalculation で意味のある係数か確認すること。
func (r *StreamingRegression) Predict(x int64) float64 {
	return r.slope*float64(x) + r.intercept
}

// PredictNow は TickCounter の現在値を x として予測する
func (r *StreamingRegression) PredictNow() float64 {
	return r.Predict(r.ticks.Millis())
}

// Slope は直近の Calculate で求めた傾きを返す
func (r *StreamingRegression) Slope() float64 { return r.slope }

// Intercept は直近の Calculate で求めた切片を返す
func (r *StreamingRegression) Intercept() float64 { return r.intercept }

// IsValidCalculation は係数が意味のある値かを返す
func (r *StreamingRegression) IsValidCalculation() bool { return r.valid }

// Len は保持している点の数を返す
func (r *StreamingRegression) Len() int { return r.points.Len() }

// Capacity は保持できる点の最大数を返す
func (r *StreamingRegression) Capacity() int { return r.points.Cap() }

// Clean は全ての点を捨て、係数を初期値（0, 0, 無効）に戻す
func (r *StreamingRegression) Clean() {
	r.points.Clear()
	r.running.reset()
	r.slope, r.intercept, r.valid = 0, 0, false
	r.logger.Debug("model cleaned", log.OperationKey, log.OperationClean)
}
