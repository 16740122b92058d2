// Package config loads form definitions from YAML or JSON documents.
//
// A document names the form attributes, optional presentation columns, and
// either a flat field list or a list of fieldsets:
//
//	form:
//	  id: signup
//	  action: /signup
//	fieldsets:
//	  - legend: Account
//	    fields:
//	      - name: email
//	        type: email
//	        required: true
//	      - group:
//	          - {name: first, type: text}
//	          - {name: last, type: text}
//	columns:
//	  - class: main
//	    fieldsets: [1]
//
// YAML mappings under a "values" key keep their declaration order. JSON
// objects do not; use a list of {value, label} records when order matters.
package config
