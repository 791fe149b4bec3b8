package buildsys

import (
	"encoding/gob"
	"os"
)

// WriteCache stores the options passed to a configure run together with its summary
func WriteCache(file string, options map[string]string, result Summary) error {
	handle, err := os.Create(file)
	if err != nil {
		return err
	}
	defer handle.Close()

	encoder := gob.NewEncoder(handle)
	err = encoder.Encode(options)
	if err != nil {
		return err
	}

	return encoder.Encode(result)
}

// ReadCache loads a cache file written by WriteCache
func ReadCache(file string) (map[string]string, Summary, error) {
	handle, err := os.Open(file)
	if err != nil {
		return nil, nil, err
	}
	defer handle.Close()

	decoder := gob.NewDecoder(handle)

	var options map[string]string
	err = decoder.Decode(&options)
	if err != nil {
		return nil, nil, err
	}

	var result Summary
	err = decoder.Decode(&result)
	if err != nil {
		return options, nil, err
	}

	return options, result, nil
}
