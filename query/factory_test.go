package query

import "testing"

func TestDefaultFactoryRegistersAllBindings(t *testing.T) {
	factory := NewDefaultQueryProcessorFactory()

	for _, binding := range []string{BindingXPath, BindingXPath2, BindingXPath3, BindingXPath31, BindingXSLT, BindingXSLT2, BindingXSLT3} {
		if _, err := factory.GetQueryProcessor(binding, nil); err != nil {
			t.Errorf("expected binding %q to resolve, got error: %v", binding, err)
		}
	}
}

func TestDefaultFactoryUnknownBinding(t *testing.T) {
	factory := NewDefaultQueryProcessorFactory()
	if _, err := factory.GetQueryProcessor("cobol", nil); err == nil {
		t.Error("expected an error for an unknown binding")
	}
}

func TestExtendableFactoryRegistersNewBinding(t *testing.T) {
	factory := NewExtendableQueryProcessorFactory(NewDefaultQueryProcessorFactory())

	called := false
	err := factory.RegisterBinding("my-dsl", func(ns map[string]string) QueryProcessor {
		called = true
		return NewXPathQueryProcessor(ns)
	})
	if err != nil {
		t.Fatalf("RegisterBinding failed: %v", err)
	}

	if _, err := factory.GetQueryProcessor("my-dsl", nil); err != nil {
		t.Fatalf("expected registered binding to resolve, got: %v", err)
	}
	if !called {
		t.Error("expected the registered constructor to be invoked")
	}
}

func TestExtendableFactoryRejectsBuiltinOverride(t *testing.T) {
	factory := NewExtendableQueryProcessorFactory(NewDefaultQueryProcessorFactory())
	err := factory.RegisterBinding(BindingXPath, func(ns map[string]string) QueryProcessor {
		return NewXPathQueryProcessor(ns)
	})
	if err == nil {
		t.Error("expected registering over a built-in binding name to fail")
	}
}

func TestExtendableFactoryFallsBackToBase(t *testing.T) {
	factory := NewExtendableQueryProcessorFactory(NewDefaultQueryProcessorFactory())
	if _, err := factory.GetQueryProcessor(BindingXSLT, nil); err != nil {
		t.Errorf("expected built-in binding to still resolve via base factory, got: %v", err)
	}
}
