package modifiers

// v1Constraint limits a modifier to code written against a 1.x SDK.
const v1Constraint = "< 2.0.0"

// estimatorClasses are the dotted symbols of the estimator constructors
// whose keyword arguments were renamed in v2. Both the package re-export
// and the defining module spellings are listed because each produces a
// distinct from-import binding.
var estimatorClasses = []string{
	"sagemaker.estimator.Estimator",
	"sagemaker.chainer.Chainer",
	"sagemaker.chainer.estimator.Chainer",
	"sagemaker.mxnet.MXNet",
	"sagemaker.mxnet.estimator.MXNet",
	"sagemaker.pytorch.PyTorch",
	"sagemaker.pytorch.estimator.PyTorch",
	"sagemaker.rl.RLEstimator",
	"sagemaker.rl.estimator.RLEstimator",
	"sagemaker.sklearn.SKLearn",
	"sagemaker.sklearn.estimator.SKLearn",
	"sagemaker.tensorflow.TensorFlow",
	"sagemaker.tensorflow.estimator.TensorFlow",
	"sagemaker.xgboost.XGBoost",
	"sagemaker.xgboost.estimator.XGBoost",
}

// frameworkEstimatorClasses are the framework estimators for which
// framework_version and py_version became required constructor arguments.
var frameworkEstimatorClasses = []string{
	"sagemaker.chainer.Chainer",
	"sagemaker.chainer.estimator.Chainer",
	"sagemaker.mxnet.MXNet",
	"sagemaker.mxnet.estimator.MXNet",
	"sagemaker.pytorch.PyTorch",
	"sagemaker.pytorch.estimator.PyTorch",
	"sagemaker.sklearn.SKLearn",
	"sagemaker.sklearn.estimator.SKLearn",
	"sagemaker.tensorflow.TensorFlow",
	"sagemaker.tensorflow.estimator.TensorFlow",
	"sagemaker.xgboost.XGBoost",
	"sagemaker.xgboost.estimator.XGBoost",
}

// modelClasses are the model constructors whose image argument became
// image_uri in v2.
var modelClasses = []string{
	"sagemaker.model.Model",
	"sagemaker.model.FrameworkModel",
	"sagemaker.chainer.ChainerModel",
	"sagemaker.chainer.model.ChainerModel",
	"sagemaker.mxnet.MXNetModel",
	"sagemaker.mxnet.model.MXNetModel",
	"sagemaker.pytorch.PyTorchModel",
	"sagemaker.pytorch.model.PyTorchModel",
	"sagemaker.sklearn.SKLearnModel",
	"sagemaker.sklearn.model.SKLearnModel",
	"sagemaker.tensorflow.TensorFlowModel",
	"sagemaker.xgboost.XGBoostModel",
	"sagemaker.xgboost.model.XGBoostModel",
}

// predictorClasses are the predictor constructors that lost their
// content_type and accept arguments in v2.
var predictorClasses = []string{
	"sagemaker.predictor.RealTimePredictor",
	"sagemaker.predictor.Predictor",
}

// trainPrefixRenames maps the v1 train_* estimator keywords to their v2
// names.
var trainPrefixRenames = map[string]string{
	"train_instance_count":     "instance_count",
	"train_instance_type":      "instance_type",
	"train_max_run":            "max_run",
	"train_max_wait":           "max_wait",
	"train_use_spot_instances": "use_spot_instances",
	"train_volume_size":        "volume_size",
	"train_volume_kms_key":     "volume_kms_key",
}

// estimatorImageRenames maps the v1 estimator image keyword to its v2 name.
var estimatorImageRenames = map[string]string{
	"image_name": "image_uri",
}

// modelImageRenames maps the v1 model image keyword to its v2 name.
var modelImageRenames = map[string]string{
	"image": "image_uri",
}

// Relocation describes one identifier that moved between v1 and v2.
// When Instantiate is set the v1 name was a module-level singleton and the
// v2 replacement must be constructed, so rewritten references gain "()".
type Relocation struct {
	Old         string
	New         string
	Instantiate bool
}

// importRelocations are the class and function moves between v1 and v2.
var importRelocations = []Relocation{
	{Old: "sagemaker.session.s3_input", New: "sagemaker.inputs.TrainingInput"},
	{Old: "sagemaker.session.ShuffleConfig", New: "sagemaker.inputs.ShuffleConfig"},
	{Old: "sagemaker.predictor.RealTimePredictor", New: "sagemaker.predictor.Predictor"},
	{Old: "sagemaker.amazon.amazon_estimator.get_image_uri", New: "sagemaker.image_uris.retrieve"},
	{Old: "sagemaker.fw_utils.create_image_uri", New: "sagemaker.image_uris.retrieve"},
	{Old: "sagemaker.tensorflow.serving.Model", New: "sagemaker.tensorflow.TensorFlowModel"},
	{Old: "sagemaker.tensorflow.serving.Predictor", New: "sagemaker.tensorflow.TensorFlowPredictor"},
}

// serdeRelocations are the serializer and deserializer moves. The v1
// names were singleton instances under sagemaker.predictor; the v2
// replacements are classes and must be instantiated.
var serdeRelocations = []Relocation{
	{Old: "sagemaker.predictor.csv_serializer", New: "sagemaker.serializers.CSVSerializer", Instantiate: true},
	{Old: "sagemaker.predictor.json_serializer", New: "sagemaker.serializers.JSONSerializer", Instantiate: true},
	{Old: "sagemaker.predictor.npy_serializer", New: "sagemaker.serializers.NumpySerializer", Instantiate: true},
	{Old: "sagemaker.predictor.csv_deserializer", New: "sagemaker.deserializers.CSVDeserializer", Instantiate: true},
	{Old: "sagemaker.predictor.json_deserializer", New: "sagemaker.deserializers.JSONDeserializer", Instantiate: true},
	{Old: "sagemaker.predictor.numpy_deserializer", New: "sagemaker.deserializers.NumpyDeserializer", Instantiate: true},
	{Old: "sagemaker.predictor.StreamDeserializer", New: "sagemaker.deserializers.StreamDeserializer"},
}
