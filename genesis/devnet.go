// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vechain/nftstaker/thor"
)

// DevAccount is a well known account for local development.
type DevAccount struct {
	Address    thor.Address
	PrivateKey *ecdsa.PrivateKey
}

// DevAccounts returns the development accounts. In order they act as owner,
// reward wallet, collectible contract, fungible contract and two stakers.
var DevAccounts = sync.OnceValue(func() []DevAccount {
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
		"88d2d80b12b92feaa0da6d62309463d20408157723f2d7e799b6a74ead9a673b",
	}
	accs := make([]DevAccount, 0, len(privKeys))
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		accs = append(accs, DevAccount{thor.Address(crypto.PubkeyToAddress(pk.PublicKey)), pk})
	}
	return accs
})

// DevContract is the program address used by NewDevnet.
var DevContract = thor.BytesToAddress([]byte("nft-staking"))

// NewDevnet returns a genesis wired to the development accounts with short periods.
func NewDevnet() *Genesis {
	accs := DevAccounts()
	gene, err := New(&Document{
		Name:             "devnet",
		Contract:         DevContract.String(),
		Owner:            accs[0].Address.String(),
		Denom:            "ujuno",
		StakingPeriod:    60,
		DistributePeriod: 10,
		RewardWallet:     accs[1].Address.String(),
		NftAddress:       accs[2].Address.String(),
		TokenAddress:     accs[3].Address.String(),
	})
	if err != nil {
		panic(err)
	}
	return gene
}
