// Package dataset provides labelled sample sources for training and testing.
//
// A Batched dataset groups its items by subject (one class per subject) and
// is split into train and test sets by taking the first k samples of every
// subject for training.
package dataset

import (
	"github.com/bpnet-ml/bpnet/internal/nn"
	"github.com/pkg/errors"
)

// ErrInvalidSplit is returned by Split for a train size outside [0, SamplesPerSubject].
var ErrInvalidSplit = errors.New("invalid train/test split")

// Item is one labelled sample.
type Item[T nn.Sample] struct {
	Sample []T
	Label  int
}

// Dataset is an indexable collection of items.
type Dataset[T nn.Sample] interface {
	ItemCount() int

	// Item returns the item at index in [0, ItemCount()).
	Item(index int) Item[T]
}

// Batched is a Dataset organised as SubjectCount × SamplesPerSubject items.
type Batched[T nn.Sample] interface {
	Dataset[T]
	SubjectCount() int
	SamplesPerSubject() int

	// At returns sample of subject; its Label is subject.
	At(subject, sample int) Item[T]
}

// All returns every item of d in index order.
func All[T nn.Sample](d Dataset[T]) []Item[T] {
	items := make([]Item[T], d.ItemCount())
	for i := range items {
		items[i] = d.Item(i)
	}
	return items
}

// Batch returns all samples of one subject.
func Batch[T nn.Sample](d Batched[T], subject int) []Item[T] {
	batch := make([]Item[T], d.SamplesPerSubject())
	for i := range batch {
		batch[i] = d.At(subject, i)
	}
	return batch
}

// Batches returns one batch per subject.
func Batches[T nn.Sample](d Batched[T]) [][]Item[T] {
	batches := make([][]Item[T], d.SubjectCount())
	for s := range batches {
		batches[s] = Batch(d, s)
	}
	return batches
}

// Split takes the first trainPerSubject samples of every subject as the
// train set and the rest as the test set. Both keep subject order.
func Split[T nn.Sample](d Batched[T], trainPerSubject int) (train, test []Item[T], err error) {
	perSubject := d.SamplesPerSubject()
	if trainPerSubject < 0 || trainPerSubject > perSubject {
		return nil, nil, errors.Wrapf(ErrInvalidSplit, "train size %d, subjects have %d samples", trainPerSubject, perSubject)
	}

	subjects := d.SubjectCount()
	train = make([]Item[T], 0, subjects*trainPerSubject)
	test = make([]Item[T], 0, subjects*(perSubject-trainPerSubject))
	for s := 0; s < subjects; s++ {
		for i := 0; i < perSubject; i++ {
			if i < trainPerSubject {
				train = append(train, d.At(s, i))
			} else {
				test = append(test, d.At(s, i))
			}
		}
	}
	return train, test, nil
}

// grid is the shared storage of the Batched implementations in this package.
type grid[T nn.Sample] struct {
	subjects   int
	perSubject int
	samples    [][]T // [subject*perSubject+sample]
}

func (g *grid[T]) ItemCount() int         { return g.subjects * g.perSubject }
func (g *grid[T]) SubjectCount() int      { return g.subjects }
func (g *grid[T]) SamplesPerSubject() int { return g.perSubject }

func (g *grid[T]) Item(index int) Item[T] {
	return g.At(index/g.perSubject, index%g.perSubject)
}

func (g *grid[T]) At(subject, sample int) Item[T] {
	if subject < 0 || subject >= g.subjects || sample < 0 || sample >= g.perSubject {
		panic(errors.Errorf("dataset: item (%d, %d) out of range %dx%d", subject, sample, g.subjects, g.perSubject))
	}
	return Item[T]{Sample: g.samples[subject*g.perSubject+sample], Label: subject}
}
