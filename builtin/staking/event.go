// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

// Event types.
const (
	EventInstantiate      = "instantiate"
	EventStake            = "stake"
	EventUnstake          = "unstake"
	EventWithdraw         = "withdraw"
	EventClaim            = "get_reward"
	EventDistribute       = "distribute_reward"
	EventUpdateConfig     = "update_config"
	EventWithdrawAllMoney = "withdraw_all_money"
)

// Event describes a state change made by a call.
type Event struct {
	Type    string            `json:"type"`
	TokenID string            `json:"tokenId,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

// Response carries what a successful call emits.
type Response struct {
	Instructions []Instruction `json:"instructions"`
	Events       []Event       `json:"events"`
}

func newResponse() *Response {
	return &Response{
		Instructions: []Instruction{},
		Events:       []Event{},
	}
}

func (r *Response) addInstruction(i Instruction) *Response {
	r.Instructions = append(r.Instructions, i)
	return r
}

func (r *Response) addEvent(typ, tokenID string, kvs ...string) *Response {
	ev := Event{Type: typ, TokenID: tokenID}
	if len(kvs) > 0 {
		ev.Attrs = make(map[string]string, len(kvs)/2)
		for i := 0; i+1 < len(kvs); i += 2 {
			ev.Attrs[kvs[i]] = kvs[i+1]
		}
	}
	r.Events = append(r.Events, ev)
	return r
}
