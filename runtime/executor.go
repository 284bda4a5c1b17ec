// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime hosts the staking program: it serializes calls and makes each one atomic.
package runtime

import (
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"github.com/jonboulle/clockwork"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/builtin/solidity"
	"github.com/vechain/nftstaker/builtin/staking"
	"github.com/vechain/nftstaker/genesis"
	"github.com/vechain/nftstaker/logdb"
	"github.com/vechain/nftstaker/state"
	"github.com/vechain/nftstaker/thor"
	"github.com/vechain/nftstaker/xenv"
)

var logger = log.New("pkg", "runtime")

// host bookkeeping lives under its own address, next to the program storage
var (
	metaAddress = thor.BytesToAddress([]byte("nftstaker-runtime"))
	slotHeight  = thor.Blake2b([]byte("height"))
	slotGenesis = thor.Blake2b([]byte("genesis"))
)

// ErrGenesisMismatch is returned when the store was instantiated from another genesis.
var ErrGenesisMismatch = errors.New("genesis mismatch")

// Output is what a committed call produced.
type Output struct {
	CallID      string `json:"callId"`
	BlockNumber uint32 `json:"blockNumber"`
	BlockTime   uint64 `json:"blockTime"`
	*staking.Response
}

// Executor runs calls one at a time against the committed store.
type Executor struct {
	lock     sync.RWMutex
	stater   *state.Stater
	contract thor.Address
	clock    clockwork.Clock
	logDB    *logdb.LogDB
	onCommit func(out *Output)
}

func New(cfg *Config) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Executor{
		stater:   state.NewStater(cfg.Store, cfg.CacheSize),
		contract: cfg.Contract,
		clock:    cfg.Clock,
		logDB:    cfg.LogDB,
		onCommit: cfg.OnCommit,
	}
	height, err := e.Height()
	if err != nil {
		return nil, err
	}
	metricHeight().Set(int64(height))
	return e, nil
}

func (e *Executor) Contract() thor.Address { return e.contract }

// CurrentTime returns the host time in unix seconds, as the next call would see it.
func (e *Executor) CurrentTime() uint64 {
	now := e.clock.Now().Unix()
	if now < 0 {
		return 0
	}
	return uint64(now)
}

// Height returns the count of committed calls.
func (e *Executor) Height() (uint32, error) {
	st := e.stater.NewState()
	return solidity.NewRaw[uint32](solidity.NewContext(metaAddress, st), slotHeight).Get()
}

// Instantiate creates the program config on behalf of caller.
func (e *Executor) Instantiate(caller thor.Address, params *staking.InstantiateParams) (*Output, error) {
	return e.run("instantiate", caller, nil, func(c *call) (*staking.Response, error) {
		return c.program.Instantiate(c.env, params)
	})
}

// Bootstrap instantiates the program from gene unless the store already holds it.
// It reports whether an instantiation happened.
func (e *Executor) Bootstrap(gene *genesis.Genesis) (bool, error) {
	if gene.Contract() != e.contract {
		return false, errors.Errorf("genesis contract %v, executor bound to %v", gene.Contract(), e.contract)
	}
	st := e.stater.NewState()
	stored, found, err := solidity.NewRaw[thor.Bytes32](solidity.NewContext(metaAddress, st), slotGenesis).Load()
	if err != nil {
		return false, err
	}
	if found {
		if stored != gene.ID() {
			return false, errors.WithMessagef(ErrGenesisMismatch, "stored %v, given %v", stored.AbbrevString(), gene.ID().AbbrevString())
		}
		return false, nil
	}

	out, err := e.run("instantiate", gene.Owner(), nil, func(c *call) (*staking.Response, error) {
		resp, err := c.program.Instantiate(c.env, gene.Params())
		if err != nil {
			return nil, err
		}
		meta := solidity.NewContext(metaAddress, c.state)
		if err := solidity.NewRaw[thor.Bytes32](meta, slotGenesis).Upsert(gene.ID()); err != nil {
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		return false, err
	}
	logger.Info("program instantiated", "genesis", gene.Name(), "id", gene.ID().AbbrevString(), "call", out.CallID)
	return true, nil
}

// Execute runs msg on behalf of caller with the given funds attached.
func (e *Executor) Execute(caller thor.Address, funds []xenv.Coin, msg *staking.ExecuteMsg) (*Output, error) {
	method, err := msg.Method()
	if err != nil {
		metricCalls().AddWithLabel(1, map[string]string{"method": "unknown", "outcome": staking.Kind(err)})
		return nil, err
	}
	return e.run(method, caller, funds, func(c *call) (*staking.Response, error) {
		return c.program.Execute(c.env, msg)
	})
}

type call struct {
	program *staking.Staking
	env     *xenv.Environment
	state   *state.State
}

// run executes fn under the call lock. State changes and the response are kept only if fn succeeds
// and the changes are written.
func (e *Executor) run(
	method string,
	caller thor.Address,
	funds []xenv.Coin,
	fn func(c *call) (*staking.Response, error),
) (out *Output, err error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	start := e.clock.Now()
	callID := uuid.New()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = staking.Kind(err)
		}
		metricCalls().AddWithLabel(1, map[string]string{"method": method, "outcome": outcome})
		metricCallDuration().ObserveWithLabels(e.clock.Since(start).Milliseconds(), map[string]string{"method": method})
	}()

	st := e.stater.NewState()
	meta := solidity.NewRaw[uint32](solidity.NewContext(metaAddress, st), slotHeight)
	height, err := meta.Get()
	if err != nil {
		return nil, err
	}

	env := xenv.New(e.contract,
		&xenv.BlockContext{Number: height + 1, Time: e.CurrentTime()},
		&xenv.CallContext{ID: callID, Caller: caller, Funds: funds},
	)
	program := staking.New(e.contract, st)

	checkpoint := st.NewCheckpoint()
	resp, err := fn(&call{program: program, env: env, state: st})
	if err != nil {
		st.RevertTo(checkpoint)
		if staking.IsStorageFault(err) {
			logger.Warn("call failed on storage", "method", method, "call", callID, "err", err)
		} else {
			logger.Debug("call reverted", "method", method, "call", callID, "kind", staking.Kind(err), "err", err)
		}
		return nil, err
	}

	if err := meta.Upsert(height + 1); err != nil {
		return nil, err
	}
	if err := st.Stage().Commit(); err != nil {
		logger.Warn("failed to commit call", "method", method, "call", callID, "err", err)
		return nil, err
	}
	metricHeight().Set(int64(height + 1))
	e.observeState(program)

	if e.logDB != nil {
		if err := e.logDB.Prepare(callID, caller, env.Now()).Insert(resp).Commit(); err != nil {
			// the call is committed, only its history is lost
			logger.Warn("failed to record call", "method", method, "call", callID, "err", err)
		}
	}

	logger.Debug("call committed",
		"method", method,
		"call", callID,
		"caller", caller,
		"height", height+1,
		"instructions", len(resp.Instructions),
		"events", len(resp.Events),
	)
	out = &Output{
		CallID:      callID,
		BlockNumber: height + 1,
		BlockTime:   env.Now(),
		Response:    resp,
	}
	if e.onCommit != nil {
		e.onCommit(out)
	}
	return out, nil
}

func (e *Executor) observeState(program *staking.Staking) {
	if cfg, err := program.Config(); err == nil {
		metricTotalStaked().Set(int64(cfg.TotalStaked))
	}
	hit, miss := e.stater.CacheStats()
	metricCacheHits().SetWithLabel(hit, map[string]string{"event": "hit"})
	metricCacheHits().SetWithLabel(miss, map[string]string{"event": "miss"})
}

// view runs a read only fn against the committed store.
func (e *Executor) view(fn func(s *staking.Staking) error) error {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return fn(staking.New(e.contract, e.stater.NewState()))
}

func (e *Executor) Config() (cfg *staking.Config, err error) {
	err = e.view(func(s *staking.Staking) error {
		cfg, err = s.Config()
		return err
	})
	return
}

func (e *Executor) Token(tokenID string) (tok *staking.Token, found bool, err error) {
	err = e.view(func(s *staking.Staking) error {
		tok, found, err = s.Token(tokenID)
		return err
	})
	return
}

func (e *Executor) TokenIDs() (ids []string, err error) {
	err = e.view(func(s *staking.Staking) error {
		ids, err = s.TokenIDs()
		return err
	})
	return
}

func (e *Executor) Tokens() (tokens []*staking.Token, err error) {
	err = e.view(func(s *staking.Staking) error {
		tokens, err = s.Tokens()
		return err
	})
	return
}

func (e *Executor) TokensOf(owner thor.Address) (tokens []*staking.Token, err error) {
	err = e.view(func(s *staking.Staking) error {
		tokens, err = s.TokensOf(owner)
		return err
	})
	return
}

// Eligible previews how many records a distribution made now would pay.
func (e *Executor) Eligible() (n uint64, err error) {
	err = e.view(func(s *staking.Staking) error {
		n, err = s.Eligible(e.CurrentTime())
		return err
	})
	return
}
