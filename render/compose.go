// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package render

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/starknet-testnets/netgen/network/node"
)

const (
	composeImage = "ubuntu:24.04"
	nodeDirMount = "/node"
	logsDirMount = "/logs"
	logsDirName  = "logs"
	netAdminCap  = "NET_ADMIN"
)

// ComposeParams are the inputs of the docker compose file of a network.
type ComposeParams struct {
	NetworkName    string
	MalachitePath  string
	SequencerPath  string
	MalachiteCount int
	SequencerCount int
}

type composeFile struct {
	Name     string                    `yaml:"name"`
	Services map[string]composeService `yaml:"services"`
	Networks map[string]composeNetwork `yaml:"networks"`
}

type composeService struct {
	Image         string   `yaml:"image"`
	ContainerName string   `yaml:"container_name"`
	Hostname      string   `yaml:"hostname"`
	WorkingDir    string   `yaml:"working_dir"`
	Command       []string `yaml:"command"`
	Volumes       []string `yaml:"volumes"`
	CapAdd        []string `yaml:"cap_add"`
	Networks      []string `yaml:"networks"`
}

type composeNetwork struct {
	Driver string `yaml:"driver"`
}

// Compose renders the docker-compose.yml running every node of a network.
// Paths of node directories are relative to the network directory.
func Compose(p ComposeParams) ([]byte, error) {
	if p.MalachiteCount < 0 || p.SequencerCount < 0 {
		return nil, fmt.Errorf("node counts must not be negative (malachite=%d, sequencer=%d)", p.MalachiteCount, p.SequencerCount)
	}
	f := composeFile{
		Name:     p.NetworkName,
		Services: make(map[string]composeService, p.MalachiteCount+p.SequencerCount),
		Networks: map[string]composeNetwork{
			p.NetworkName: {Driver: "bridge"},
		},
	}
	add := func(kind node.Kind, count int, repoPath string) {
		for i := 1; i <= count; i++ {
			name := node.Name(kind, i)
			f.Services[name] = composeService{
				Image:         composeImage,
				ContainerName: fmt.Sprintf("%s-%s", p.NetworkName, name),
				Hostname:      name,
				WorkingDir:    nodeDirMount,
				Command:       []string{"/bin/bash", nodeDirMount + "/start.sh"},
				Volumes: []string{
					fmt.Sprintf("%s:%s", repoPath, repoMounts[kind]),
					fmt.Sprintf("./%s:%s", name, nodeDirMount),
					fmt.Sprintf("./%s:%s", logsDirName, logsDirMount),
				},
				CapAdd:   []string{netAdminCap},
				Networks: []string{p.NetworkName},
			}
		}
	}
	add(node.Malachite, p.MalachiteCount, p.MalachitePath)
	add(node.Sequencer, p.SequencerCount, p.SequencerPath)

	out, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal compose file: %w", err)
	}
	return out, nil
}
