// Package graph defines the pipeline step-graph model, its YAML form, and
// definition validation.
//
// A pipeline is an ordered list of steps. Each step names a processor, wires
// inputs to sources ("stepId.outputName" for a step output, a bare name for
// a pipeline seed), declares parameters with an optional caller source and
// default, and declares typed outputs:
//
//	name: detect-stars
//	steps:
//	  - id: gray
//	    processor: grayscale
//	    inputs:
//	      - name: image
//	        source: input_frame
//	    outputs:
//	      - name: gray
//	        type: frame
//	  - id: blur
//	    processor: gaussian_blur
//	    inputs:
//	      - name: image
//	        source: gray.gray
//	    params:
//	      - name: sigma
//	        default: 2.0
//	    outputs:
//	      - name: blurred
//	        type: frame
//
// Validate applies struct rules, semantic checks (duplicate ids, collection
// modes, parameter resolvability), and cycle detection among declared steps.
// A reference to an undeclared step is legal: the consuming instance simply
// never becomes ready.
package graph
