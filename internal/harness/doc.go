// Package harness runs scan scenarios described in YAML and checks their
// findings and rendered reports.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	query:
//	  mode: variables        # or switches
//	  id: 5
//	maps: [1]                # optional map filter
//	project:
//	  variables: {5: Steps}
//	  switches: {}
//	  maps:
//	    - id: 1
//	      name: Town
//	      events:
//	        - id: 1
//	          name: Guard
//	          x: 4
//	          y: 7
//	          pages:
//	            - conditions: {switch1_id: 1, switch2_id: 1, variable_id: 5, variable_valid: true, variable_value: 10}
//	              list:
//	                - {code: 122, parameters: [5, 5, 0, 0, 1]}
//	  common_events: []
//	expect:
//	  - {access: READ, active: true, page: 1, description: "IF {Steps} >= 10:"}
//	  - {access: WRITE, active: true, page: 1, line: 1, description: "{Steps} = 1"}
//
// A scenario whose query must be rejected sets expect_error to the
// engine.QueryErrorCode instead of listing findings.
//
// # Deterministic Testing
//
// Each run materializes the project into a fresh temporary data directory,
// loads it with the project loader and scans it with the engine. Reports
// are stamped with the scenario's run_id, or "test-run-default", so golden
// files are stable.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/threshold.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
