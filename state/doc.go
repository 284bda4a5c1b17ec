// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage on top of a kv store.
// It follows the flow as bellow:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ stage ] -> [ batch write ]
//	         |
//	    [ lru cache ]
//	         |
//	    [ kv store ]
//
// A State is created per call. Nothing reaches the store until the
// caller stages and commits it, so dropping a State discards all of its writes.
package state
