package set_test

import (
	"github.com/fzft/chainset/hashtable"
)

// person brings its own equality and hash, the way domain types do.
type person struct {
	FirstName  string
	SecondName string
	Age        int
}

func (p *person) Equal(other *person) bool {
	return other != nil &&
		p.FirstName == other.FirstName &&
		p.SecondName == other.SecondName &&
		p.Age == other.Age
}

func (p *person) Hash() int {
	return hashtable.Hash(p.FirstName) + hashtable.Hash(p.SecondName) + p.Age
}

func ivan() *person {
	return &person{FirstName: "Ivan", SecondName: "Ivanov", Age: 26}
}

func dmitry() *person {
	return &person{FirstName: "Dmitry", SecondName: "Petrov", Age: 32}
}
