package vocab

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrCorruptDump is wrapped by every Load failure.
var ErrCorruptDump = errors.New("corrupt vocabulary dump")

// Dump is the persisted form of a Vocabulary. idToToken is keyed by the
// decimal id because structured formats such as JSON only allow string keys.
type Dump struct {
	TokenToID map[string]int    `json:"tokenToId" yaml:"tokenToId"`
	IDToToken map[string]string `json:"idToToken" yaml:"idToToken"`
	TokenFreq map[string]int    `json:"tokenFreq" yaml:"tokenFreq"`
	NextID    int               `json:"nextId" yaml:"nextId"`
}

// Save returns a copy of the vocabulary state.
func (v *Vocabulary) Save() Dump {
	d := Dump{
		TokenToID: make(map[string]int, len(v.tokenToID)),
		IDToToken: make(map[string]string, len(v.idToToken)),
		TokenFreq: make(map[string]int, len(v.tokenFreq)),
		NextID:    v.nextID,
	}
	for t, id := range v.tokenToID {
		d.TokenToID[t] = id
	}
	for id, t := range v.idToToken {
		d.IDToToken[strconv.Itoa(id)] = t
	}
	for t, c := range v.tokenFreq {
		d.TokenFreq[t] = c
	}
	return d
}

// Load replaces the vocabulary state with d. The receiver is left untouched
// when d is inconsistent.
func (v *Vocabulary) Load(d Dump) error {
	idToToken := make(map[int]string, len(d.IDToToken))
	for k, t := range d.IDToToken {
		id, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("%w: idToToken key %q is not an integer", ErrCorruptDump, k)
		}
		idToToken[id] = t
	}

	if len(idToToken) != len(d.TokenToID) {
		return fmt.Errorf("%w: %d ids but %d tokens", ErrCorruptDump, len(idToToken), len(d.TokenToID))
	}
	tokenToID := make(map[string]int, len(d.TokenToID))
	for t, id := range d.TokenToID {
		if idToToken[id] != t {
			return fmt.Errorf("%w: token %q maps to id %d but id %d maps to %q", ErrCorruptDump, t, id, id, idToToken[id])
		}
		if id < 0 || id >= d.NextID {
			return fmt.Errorf("%w: id %d outside [0, nextId=%d)", ErrCorruptDump, id, d.NextID)
		}
		tokenToID[t] = id
	}

	tokenFreq := make(map[string]int, len(d.TokenFreq))
	for t, c := range d.TokenFreq {
		tokenFreq[t] = c
	}

	v.tokenToID = tokenToID
	v.idToToken = idToToken
	v.tokenFreq = tokenFreq
	v.nextID = d.NextID
	return nil
}
