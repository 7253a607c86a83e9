package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	helloSchema := compile("hello.schema.json")
	welcomeSchema := compile("welcome.schema.json")
	phaseSchema := compile("phase.schema.json")
	turnSchema := compile("turn.schema.json")
	combatSchema := compile("combat.schema.json")
	combatDoneSchema := compile("combat_done.schema.json")

	var hello any
	_ = json.Unmarshal([]byte(`{
	  "type":"HELLO",
	  "protocol_version":"1.0",
	  "role":"RESOLVER",
	  "client_name":"tactical1"
	}`), &hello)
	validate(helloSchema, hello)

	var welcome any
	_ = json.Unmarshal([]byte(`{
	  "type":"WELCOME",
	  "protocol_version":"1.0",
	  "session_id":"S1",
	  "game_id":"dominion-1",
	  "turn_number":12,
	  "galaxy_params":{"width":20,"height":15,"seed":1337},
	  "civilizations":[
	    {"civ_id":0,"key":"ALPHA","name":"Alpha Dominion","is_empire":true,"is_human":true},
	    {"civ_id":1,"key":"BETA","name":"Beta Collective","is_empire":true,"is_human":false}
	  ]
	}`), &welcome)
	validate(welcomeSchema, welcome)

	var phase any
	_ = json.Unmarshal([]byte(`{
	  "type":"PHASE",
	  "protocol_version":"1.0",
	  "turn_number":12,
	  "phase":"Combat",
	  "state":"CHANGED"
	}`), &phase)
	validate(phaseSchema, phase)

	var turn any
	_ = json.Unmarshal([]byte(`{
	  "type":"TURN",
	  "protocol_version":"1.0",
	  "turn_number":13,
	  "standings":[
	    {"civ_id":0,"key":"ALPHA","credits":5400,"colonies":3,"population":1500,
	     "morale":101.5,"credit_rank":1,"colony_rank":1},
	    {"civ_id":1,"key":"BETA","credits":5100,"colonies":2,"population":900,
	     "morale":95.0,"credit_rank":2,"colony_rank":2}
	  ],
	  "sitreps":[
	    {"owner":0,"kind":"Starvation","priority":"Red","summary":"Starvation on Alpha Prime: 54 lost"}
	  ]
	}`), &turn)
	validate(turnSchema, turn)

	var combat any
	_ = json.Unmarshal([]byte(`{
	  "type":"COMBAT",
	  "protocol_version":"1.0",
	  "turn_number":12,
	  "combat_id":"C-12-1",
	  "location":[5,5],
	  "sides":[
	    {"civ_id":0,"fleets":[{"fleet_id":7,"ships":3}],"ships":3},
	    {"civ_id":1,"fleets":[{"fleet_id":9,"ships":2}],"ships":2}
	  ]
	}`), &combat)
	validate(combatSchema, combat)

	var done any
	_ = json.Unmarshal([]byte(`{
	  "type":"COMBAT_DONE",
	  "protocol_version":"1.0",
	  "combat_id":"C-12-1"
	}`), &done)
	validate(combatDoneSchema, done)
}
