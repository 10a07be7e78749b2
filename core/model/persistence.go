package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/edgeml/pkg/errors"
)

// SaveModel は値をgob形式でファイルに保存する
//
// 使用例:
//
//	stats := nb.Statistics()
//	err := model.SaveModel(&stats, "nb.gob")
func SaveModel(v interface{}, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close file")
		}
	}()
	return SaveModelToWriter(v, file)
}

// LoadModel はファイルからgob形式の値を読み込む
//
// 使用例:
//
//	var stats naive_bayes.ClassStatistics
//	err := model.LoadModel(&stats, "nb.gob")
func LoadModel(v interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer file.Close()
	return LoadModelFromReader(v, file)
}

// SaveModelToWriter は値をio.Writerに保存する
func SaveModelToWriter(v interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadModelFromReader はio.Readerから値を読み込む
func LoadModelFromReader(v interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(v); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return nil
}
