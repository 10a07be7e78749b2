package linear

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
	"github.com/YuminosukeSato/edgeml/pkg/log"
)

// CoefficientsSize は保存レイアウトのバイト数
//
//	offset+0: slope     float32
//	offset+4: intercept float32
//	offset+8: valid     1 byte (0 = false)
//
// バイトオーダーは実行環境のネイティブ順。保存側と読込側で同じプラットフォームを前提とする。
const CoefficientsSize = 9

// Coefficients は永続化される回帰係数
type Coefficients struct {
	Slope     float32
	Intercept float32
	Valid     bool
}

// MarshalBinary は Coefficients を9バイトにエンコードする
func (c Coefficients) MarshalBinary() ([]byte, error) {
	buf := make([]byte, CoefficientsSize)
	binary.NativeEndian.PutUint32(buf[0:4], math.Float32bits(c.Slope))
	binary.NativeEndian.PutUint32(buf[4:8], math.Float32bits(c.Intercept))
	if c.Valid {
		buf[8] = 1
	}
	return buf, nil
}

// UnmarshalBinary は MarshalBinary の逆変換
func (c *Coefficients) UnmarshalBinary(data []byte) error {
	if len(data) != CoefficientsSize {
		return errors.NewDimensionError("Coefficients.UnmarshalBinary", CoefficientsSize, len(data), 0)
	}
	c.Slope = math.Float32frombits(binary.NativeEndian.Uint32(data[0:4]))
	c.Intercept = math.Float32frombits(binary.NativeEndian.Uint32(data[4:8]))
	c.Valid = data[8] != 0
	return nil
}

// Coefficients は現在の係数を保存用の精度で返す
func (r *StreamingRegression) Coefficients() Coefficients {
	return Coefficients{
		Slope:     float32(r.slope),
		Intercept: float32(r.intercept),
		Valid:     r.valid,
	}
}

// SaveCoefficients は係数を w の offset から9バイトに書き込む
func (r *StreamingRegression) SaveCoefficients(w io.WriterAt, offset int64) error {
	data, err := r.Coefficients().MarshalBinary()
	if err != nil {
		return err
	}
	n, err := w.WriteAt(data, offset)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		r.logger.Error("coefficient save failed", err, log.OperationKey, log.OperationSave)
		return errors.Wrapf(err, "SaveCoefficients at offset %d", offset)
	}
	return nil
}

// LoadCoefficients は r の offset から係数を読み込む。保持している点には触れない。
func (r *StreamingRegression) LoadCoefficients(src io.ReaderAt, offset int64) error {
	data := make([]byte, CoefficientsSize)
	n, err := src.ReadAt(data, offset)
	if n == len(data) {
		err = nil
	}
	if err != nil {
		r.logger.Error("coefficient load failed", err, log.OperationKey, log.OperationLoad)
		return errors.Wrapf(err, "LoadCoefficients at offset %d", offset)
	}
	var c Coefficients
	if err := c.UnmarshalBinary(data); err != nil {
		return err
	}
	r.slope = float64(c.Slope)
	r.intercept = float64(c.Intercept)
	r.valid = c.Valid
	r.logger.Debug("coefficients loaded",
		log.OperationKey, log.OperationLoad,
		log.SlopeKey, r.slope,
		log.InterceptKey, r.intercept,
		log.ValidKey, r.valid,
	)
	return nil
}
