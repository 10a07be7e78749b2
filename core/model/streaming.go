package model

import (
	"context"

	"github.com/YuminosukeSato/edgeml/core/buffer"
	"github.com/YuminosukeSato/edgeml/pkg/errors"
)

// TrainStream はチャネルから届くサンプルを呼び出し元のゴルーチンで順に学習する。
// チャネルが閉じられると nil を、ctx がキャンセルされると ctx.Err() を返す。
// どちらの場合も学習済みのサンプル数を返す。
//
// 使用例:
//
//	samples := make(chan buffer.Sample)
//	go acquire(samples)
//	n, err := model.TrainStream(ctx, knn, samples)
func TrainStream(ctx context.Context, l Learner, samples <-chan buffer.Sample) (n int, err error) {
	defer errors.Recover(&err, "TrainStream")

	for {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		case s, ok := <-samples:
			if !ok {
				return n, nil
			}
			if trainErr := l.Train(s.Features, s.Label); trainErr != nil {
				return n, errors.Wrapf(trainErr, "TrainStream: sample %d", n)
			}
			n++
		}
	}
}
