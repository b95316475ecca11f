// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package render turns derived network parameters into the text of the
// files each node consumes. Every function is pure: parameters in, bytes out.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/starknet-testnets/netgen/network"
	"github.com/starknet-testnets/netgen/network/node"
	"github.com/starknet-testnets/netgen/utils/constants"
)

const (
	malachiteStartTemplate = "malachite-start.sh.tmpl"
	malachiteResetTemplate = "malachite-reset.sh.tmpl"
	sequencerStartTemplate = "sequencer-start.sh.tmpl"
	sequencerResetTemplate = "sequencer-reset.sh.tmpl"
	bashrcTemplate         = "bashrc.tmpl"
)

var (
	//go:embed templates
	embeddedTemplates embed.FS

	templates = template.Must(template.ParseFS(embeddedTemplates, "templates/*.tmpl"))
)

// Where each kind's repository is mounted, and where its binary is built.
var (
	repoMounts = map[node.Kind]string{
		node.Malachite: "/malachite",
		node.Sequencer: "/sequencer",
	}
	binDirs = map[node.Kind]string{
		node.Malachite: "/malachite/code/target/release",
		node.Sequencer: "/sequencer/target/release",
	}
)

// Data handed to the script templates. Fields a template doesn't use are
// left empty.
type scriptParams struct {
	NetworkName string
	NodeName    string
	NodeType    string
	ID          int
	NodeBin     string
	BinDir      string
	P2PPort     int
	Params      network.SequencerParams
}

func execute(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("couldn't render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func newScriptParams(networkName string, kind node.Kind, id int) scriptParams {
	return scriptParams{
		NetworkName: networkName,
		NodeName:    node.Name(kind, id),
		NodeType:    kind.String(),
		ID:          id,
	}
}

func MalachiteStart(networkName string, id int) ([]byte, error) {
	return execute(malachiteStartTemplate, newScriptParams(networkName, node.Malachite, id))
}

func MalachiteReset(networkName string, id int) ([]byte, error) {
	return execute(malachiteResetTemplate, newScriptParams(networkName, node.Malachite, id))
}

// SequencerStart renders the start script of a sequencer. The script carries
// the node's secret key, so it should only be readable by the node.
func SequencerStart(networkName string, params network.SequencerParams) ([]byte, error) {
	p := newScriptParams(networkName, node.Sequencer, params.ID)
	p.P2PPort = constants.P2PPort
	p.Params = params
	return execute(sequencerStartTemplate, p)
}

func SequencerReset(networkName string, id int) ([]byte, error) {
	return execute(sequencerResetTemplate, newScriptParams(networkName, node.Sequencer, id))
}

// Bashrc renders the environment setup sourced by a node's scripts.
func Bashrc(networkName string, kind node.Kind, id int) ([]byte, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown node kind %s", kind)
	}
	p := newScriptParams(networkName, kind, id)
	p.NodeBin = kind.Binary()
	p.BinDir = binDirs[kind]
	return execute(bashrcTemplate, p)
}
