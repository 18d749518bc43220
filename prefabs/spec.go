package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type ColliderSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type OwlSpec struct {
	Name               string       `yaml:"name"`
	Carry              string       `yaml:"carry"`
	FlyingSpeed        float64      `yaml:"flying_speed"`
	ActivationDistance float64      `yaml:"activation_distance"`
	CarryHalfWidth     float64      `yaml:"carry_half_width"`
	CarryLift          float64      `yaml:"carry_lift"`
	ThawSeconds        float64      `yaml:"thaw_seconds"`
	DeadScript         string       `yaml:"dead_script"`
	Collider           ColliderSpec `yaml:"collider"`
}

type SkydiveSpec struct {
	Name        string       `yaml:"name"`
	BlastRadius float64      `yaml:"blast_radius"`
	Gravity     float64      `yaml:"gravity"`
	Collider    ColliderSpec `yaml:"collider"`
}

type PlayerSpec struct {
	Name         string       `yaml:"name"`
	RunSpeed     float64      `yaml:"run_speed"`
	JumpSpeed    float64      `yaml:"jump_speed"`
	BounceSpeed  float64      `yaml:"bounce_speed"`
	InvulnFrames int          `yaml:"invuln_frames"`
	Collider     ColliderSpec `yaml:"collider"`
}

func LoadOwlSpec() (OwlSpec, error) {
	return LoadSpec[OwlSpec]("owl.yaml")
}

func LoadSkydiveSpec() (SkydiveSpec, error) {
	return LoadSpec[SkydiveSpec]("skydive.yaml")
}

func LoadPlayerSpec() (PlayerSpec, error) {
	return LoadSpec[PlayerSpec]("player.yaml")
}
