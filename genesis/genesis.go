// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis loads the document a staking program is instantiated from.
package genesis

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/nftstaker/builtin/staking"
	"github.com/vechain/nftstaker/thor"
)

// Document is the yaml form of a genesis.
type Document struct {
	Name             string `yaml:"name"`
	Contract         string `yaml:"contract"`
	Owner            string `yaml:"owner"`
	Denom            string `yaml:"denom"`
	StakingPeriod    uint64 `yaml:"staking_period"`
	DistributePeriod uint64 `yaml:"distribute_period"`
	RewardWallet     string `yaml:"reward_wallet"`
	NftAddress       string `yaml:"nft_address"`
	TokenAddress     string `yaml:"token_address"`
}

// Genesis is a validated document.
type Genesis struct {
	name     string
	id       thor.Bytes32
	contract thor.Address
	owner    thor.Address
	params   staking.InstantiateParams
}

// Load reads and validates the document at path.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	gene, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "genesis %s", path)
	}
	return gene, nil
}

// Parse decodes a yaml document. Unknown fields are rejected.
func Parse(data []byte) (*Genesis, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.New("empty document")
		}
		return nil, errors.Wrap(err, "decode")
	}
	return New(&doc)
}

// New validates doc.
func New(doc *Document) (*Genesis, error) {
	address := func(field, value string) (thor.Address, error) {
		addr, err := thor.ParseAddress(strings.TrimSpace(value))
		if err != nil {
			return thor.Address{}, errors.WithMessagef(err, "%s", field)
		}
		if addr.IsZero() {
			return thor.Address{}, errors.Errorf("%s: zero address", field)
		}
		return *addr, nil
	}

	contract, err := address("contract", doc.Contract)
	if err != nil {
		return nil, err
	}
	owner, err := address("owner", doc.Owner)
	if err != nil {
		return nil, err
	}
	wallet, err := address("reward_wallet", doc.RewardWallet)
	if err != nil {
		return nil, err
	}
	nft, err := address("nft_address", doc.NftAddress)
	if err != nil {
		return nil, err
	}
	token, err := address("token_address", doc.TokenAddress)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.Denom) == "" {
		return nil, errors.New("denom: must be set")
	}
	if doc.StakingPeriod == 0 {
		return nil, errors.New("staking_period: must be positive")
	}

	canonical, err := yaml.Marshal(doc)
	if err != nil {
		return nil, err
	}

	name := doc.Name
	if name == "" {
		name = "custom"
	}
	return &Genesis{
		name:     name,
		id:       thor.Blake2b(canonical),
		contract: contract,
		owner:    owner,
		params: staking.InstantiateParams{
			Owner:               &owner,
			Denom:               doc.Denom,
			StakingPeriod:       doc.StakingPeriod,
			DistributePeriod:    doc.DistributePeriod,
			RewardWallet:        wallet,
			CollectibleContract: nft,
			FungibleContract:    token,
		},
	}, nil
}

func (g *Genesis) Name() string { return g.name }

// ID identifies the document. A data dir instantiated from one genesis refuses another.
func (g *Genesis) ID() thor.Bytes32 { return g.id }

// Contract is the address the program is bound to.
func (g *Genesis) Contract() thor.Address { return g.contract }

// Owner also signs the instantiation.
func (g *Genesis) Owner() thor.Address { return g.owner }

// Params returns a copy of the instantiation parameters.
func (g *Genesis) Params() *staking.InstantiateParams {
	params := g.params
	owner := *g.params.Owner
	params.Owner = &owner
	return &params
}
