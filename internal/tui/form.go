// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-dir-backup/internal/service"
	"github.com/MKhiriev/go-dir-backup/models"
	"github.com/charmbracelet/bubbles/textinput"
)

// Form rows. The inputs come first; the action row is last.
const (
	fieldAddress = iota
	fieldToken
	fieldDirectory
	fieldActions
)

var fieldLabels = [...]string{
	fieldAddress:   "Server",
	fieldToken:     "Token",
	fieldDirectory: "Directory",
}

var formActions = []models.Action{
	models.ActionPing,
	models.ActionInit,
	models.ActionBackup,
	models.ActionRestore,
}

var actionLabels = map[models.Action]string{
	models.ActionPing:    "Check server",
	models.ActionInit:    "New token",
	models.ActionBackup:  "Backup",
	models.ActionRestore: "Restore",
}

func newInputs(prefill service.Request) []textinput.Model {
	inputs := make([]textinput.Model, fieldActions)

	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 4096
		ti.Width = 48
		inputs[i] = ti
	}

	inputs[fieldAddress].Placeholder = "http://localhost:8080"
	inputs[fieldAddress].SetValue(prefill.Address)
	inputs[fieldToken].Placeholder = "issued by \"New token\""
	inputs[fieldToken].SetValue(prefill.Token)
	inputs[fieldDirectory].Placeholder = "directory to back up or restore into"
	inputs[fieldDirectory].SetValue(prefill.Directory)

	return inputs
}

// request builds the session input from the form. Values are passed as typed;
// the service trims and expands them.
func request(action models.Action, inputs []textinput.Model) service.Request {
	return service.Request{
		Action:    action,
		Address:   inputs[fieldAddress].Value(),
		Token:     inputs[fieldToken].Value(),
		Directory: inputs[fieldDirectory].Value(),
	}
}
